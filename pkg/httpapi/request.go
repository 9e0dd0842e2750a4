package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"slices"
	"strconv"
	"sync"

	"github.com/go-playground/form"
	"github.com/gorilla/mux"

	"github.com/iota-uz/deptemp/pkg/serrors"
)

// MaxBodyBytes bounds every decoded request body.
const MaxBodyBytes = 1 << 20

var queryDecoder = sync.OnceValue(func() *form.Decoder {
	decoder := form.NewDecoder()
	decoder.SetTagName("form")
	return decoder
})

// PathUint32 parses the named path variable as an unsigned 32-bit integer.
func PathUint32(r *http.Request, name string) (uint32, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, serrors.Malformed(fmt.Errorf("missing path parameter %s", name))
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, serrors.Malformed(fmt.Errorf("can not parse %q to a u32", raw))
	}
	return uint32(v), nil
}

// PathID is PathUint32 widened to the int identities used by the domain.
func PathID(r *http.Request, name string) (int, error) {
	v, err := PathUint32(r, name)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// DecodeJSON decodes the request body into dst. Every failure is a malformed request.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return serrors.Malformed(describeJSONError(err))
	}
	return nil
}

// DecodeQuery decodes the URL query into dst using `form` struct tags.
func DecodeQuery(r *http.Request, dst any) error {
	if err := queryDecoder().Decode(dst, r.URL.Query()); err != nil {
		var decodeErrs form.DecodeErrors
		if errors.As(err, &decodeErrs) && len(decodeErrs) > 0 {
			fields := slices.Sorted(maps.Keys(decodeErrs))
			return serrors.Malformed(fmt.Errorf("query %s: %w", fields[0], decodeErrs[fields[0]]))
		}
		return serrors.Malformed(err)
	}
	return nil
}

func describeJSONError(err error) error {
	var (
		syntaxErr   *json.SyntaxError
		typeErr     *json.UnmarshalTypeError
		tooLargeErr *http.MaxBytesError
	)
	switch {
	case errors.Is(err, io.EOF):
		return errors.New("request body is empty")
	case errors.Is(err, io.ErrUnexpectedEOF):
		return errors.New("request body is truncated")
	case errors.As(err, &syntaxErr):
		return fmt.Errorf("invalid JSON at offset %d", syntaxErr.Offset)
	case errors.As(err, &typeErr):
		return fmt.Errorf("%s: invalid type %s, expected %s", typeErr.Field, typeErr.Value, typeErr.Type)
	case errors.As(err, &tooLargeErr):
		return fmt.Errorf("request body exceeds %d bytes", tooLargeErr.Limit)
	default:
		return err
	}
}
