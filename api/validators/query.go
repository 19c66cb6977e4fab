package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/ammabio/amma-backend/pkg/errors"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").
			WithFields(pkgerrors.FieldErrors{key: {"must be numeric"}})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").
			WithFields(pkgerrors.FieldErrors{key: {"is out of range"}})
	}
	return value, nil
}

// ParsePathID parses a positive numeric path parameter.
func ParsePathID(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || value == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeNotFound, "resource not found")
	}
	return uint(value), nil
}
