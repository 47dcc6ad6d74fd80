package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Razgrits/Suno-Battler/internal/constants"
	"github.com/Razgrits/Suno-Battler/internal/monstergen"
	"github.com/Razgrits/Suno-Battler/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// battleIDParam returns the normalized :battleID route parameter, or "" when
// it is not a UUID.
func battleIDParam(c *gin.Context) string {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("battleID")))
	if err != nil {
		return ""
	}
	return id.String()
}

// writeServiceError maps service and generator errors to HTTP responses.
func writeServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrBattleNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
	case errors.Is(err, service.ErrInvalidCombatants):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidCombatants, constants.JSONKeyDetails: err.Error()})
	case errors.Is(err, monstergen.ErrGenerationFailed):
		c.JSON(http.StatusBadGateway, gin.H{constants.JSONKeyError: constants.ErrFailedGenerateMonsters, constants.JSONKeyDetails: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: fallback})
	}
}

// normalizeTimestamps recursively renames GORM timestamp keys from CamelCase
// (CreatedAt, UpdatedAt, DeletedAt) to snake_case so clients consistently
// receive snake_case timestamps. The embedded gorm ID is renamed too.
func normalizeTimestamps(v interface{}) interface{} {
	switch vv := v.(type) {
	case map[string]interface{}:
		for k, val := range vv {
			vv[k] = normalizeTimestamps(val)
		}
		for from, to := range map[string]string{"CreatedAt": "created_at", "UpdatedAt": "updated_at", "DeletedAt": "deleted_at", "ID": "id"} {
			if val, ok := vv[from]; ok {
				vv[to] = val
				delete(vv, from)
			}
		}
		return vv
	case []interface{}:
		for i := range vv {
			vv[i] = normalizeTimestamps(vv[i])
		}
		return vv
	default:
		return v
	}
}

// MarshalIntoSnakeTimestamps marshals the given value into JSON, then decodes
// into an interface{} and normalizes timestamp keys to snake_case.
func MarshalIntoSnakeTimestamps(v interface{}) (interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return normalizeTimestamps(out), nil
}
