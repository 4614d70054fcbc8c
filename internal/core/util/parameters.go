package util

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

var ErrMalformedBody = errors.New("request body must be a JSON object")

// ParamsToMap decodes the request body into a generic map so field types can
// be checked before binding. An empty body yields an empty map.
func ParamsToMap(c *gin.Context) (map[string]any, error) {
	params := map[string]any{}

	body, err := c.GetRawData()
	if err != nil {
		return params, err
	}

	if len(body) == 0 {
		return params, nil
	}

	if err := json.Unmarshal(body, &params); err != nil || params == nil {
		return map[string]any{}, ErrMalformedBody
	}

	return params, nil
}

// ParseID reads the {id} path parameter. Anything that is not a positive
// integer cannot address a record.
func ParseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}
