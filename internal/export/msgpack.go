package export

import (
	"io"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/anssilaukkarinen/bfty/internal/types"
)

// Msgpack writes the whole year, every raw and derived column included, as
// a MessagePack bundle.
type Msgpack struct{}

func (Msgpack) Name() string { return "msgpack" }

func (Msgpack) Export(dir string, r *types.YearResult) error {
	path := filepath.Join(dir, "bundle", r.Dataset+".msgpack")
	return writeFile(path, func(w io.Writer) error {
		return EncodeBundle(w, r.Bundle())
	})
}

// EncodeBundle encodes b using its json tags as field names.
func EncodeBundle(w io.Writer, b *types.Bundle) error {
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	return enc.Encode(b)
}

// DecodeBundle reads a bundle written by EncodeBundle.
func DecodeBundle(r io.Reader) (*types.Bundle, error) {
	dec := msgpack.NewDecoder(r)
	dec.SetCustomStructTag("json")
	var b types.Bundle
	if err := dec.Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}
