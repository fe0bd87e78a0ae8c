// Package shader loads the pre-compiled SPIR-V stages the pipeline is built from.
package shader

import (
	"encoding/binary"
	"os"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/llap/llap/internal/diag"
)

// Stages holds the decoded bytecode of both pipeline stages.
type Stages struct {
	Vertex   []uint32
	Fragment []uint32
}

// Load reads and decodes the vertex and fragment stage files. Failure to open
// or decode either file is fatal.
func Load(vertPath, fragPath string) (Stages, error) {
	var stages Stages
	var group errgroup.Group

	group.Go(func() error {
		code, err := ReadFile(vertPath)
		stages.Vertex = code
		return err
	})
	group.Go(func() error {
		code, err := ReadFile(fragPath)
		stages.Fragment = code
		return err
	})

	if err := group.Wait(); err != nil {
		return Stages{}, diag.Fatal(err)
	}
	return stages, nil
}

func ReadFile(path string) ([]uint32, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open shader file")
	}

	code, err := Bytecode(b)
	if err != nil {
		return nil, errors.Wrapf(err, "shader %s", path)
	}
	return code, nil
}

// Bytecode converts a SPIR-V file into its little-endian 32-bit words.
func Bytecode(b []byte) ([]uint32, error) {
	if len(b) == 0 {
		return nil, errors.New("empty SPIR-V module")
	}
	if len(b)%4 != 0 {
		return nil, errors.Newf("SPIR-V size %d is not a multiple of 4", len(b))
	}

	code := make([]uint32, len(b)/4)
	for i := range code {
		code[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return code, nil
}
