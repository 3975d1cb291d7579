// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// maxFileSize bounds user-supplied CUE input so a corrupt or hostile file
// cannot exhaust memory during evaluation.
const maxFileSize = 1 << 20

// Compile evaluates raw CUE source without applying a schema. Callers use it
// to probe a file's top-level fields before committing to full validation.
func Compile(data []byte, filename string) (cue.Value, error) {
	if err := checkFileSize(data, filename); err != nil {
		return cue.Value{}, err
	}

	v := cuecontext.New().CompileBytes(data, cue.Filename(filename))
	if v.Err() != nil {
		return cue.Value{}, FormatError(v.Err(), filename)
	}
	return v, nil
}

// DecodeWithSchema unifies user data with the definition at schemaPath inside
// the embedded schema, validates the result for concreteness, and decodes it
// into T. Schema compilation failures are internal errors; everything else is
// reported against filename with a field path.
func DecodeWithSchema[T any](schema string, data []byte, schemaPath, filename string) (*T, error) {
	if err := checkFileSize(data, filename); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}
	schemaRoot := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if schemaRoot.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, schemaRoot.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(filename))
	if userValue.Err() != nil {
		return nil, FormatError(userValue.Err(), filename)
	}

	unified := schemaRoot.Unify(userValue)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, FormatError(err, filename)
	}

	var out T
	if err := unified.Decode(&out); err != nil {
		return nil, FormatError(err, filename)
	}
	return &out, nil
}

func checkFileSize(data []byte, filename string) error {
	if int64(len(data)) > maxFileSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes",
			filename, len(data), int64(maxFileSize))
	}
	return nil
}
