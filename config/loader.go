// Package config loads gradsym's executor and optimizer settings from
// CUE files, validated against a schema.
package config

import (
	"errors"
	"os"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// ErrValueNotFound is returned by Loader.AssignFirst when no configured
// root defines the requested path.
var ErrValueNotFound = errors.New("config: value not found")

// Loader reads a fixed set of CUE files, each validated against the same
// schema, and answers lookups against them in the order supplied.
type Loader struct {
	getRoots func() ([]rootInfo, error)
}

type rootInfo struct {
	value cue.Value
	path  string
}

// NewLoader builds a Loader over filePaths. schemaSrc, if non-empty, is a
// CUE struct body (without the enclosing braces) that every file must
// unify with.
func NewLoader(filePaths []string, schemaSrc string) Loader {
	return Loader{
		getRoots: sync.OnceValues(func() (ret []rootInfo, err error) {
			var schema cue.Value
			if schemaSrc != "" {
				ctx := cuecontext.New()
				schema = ctx.CompileString("close({" + schemaSrc + "})")
				if err := schema.Err(); err != nil {
					return nil, err
				}
			}

			for _, filePath := range filePaths {
				content, err := os.ReadFile(filePath)
				if err != nil {
					return nil, err
				}

				ctx := cuecontext.New()
				value := ctx.CompileBytes(content, cue.Filename(filePath))
				if err := value.Err(); err != nil {
					return nil, err
				}

				if schema.Exists() {
					if err := schema.Unify(value).Validate(); err != nil {
						return nil, err
					}
				}

				ret = append(ret, rootInfo{value: value, path: filePath})
			}

			return ret, nil
		}),
	}
}

// AssignFirst decodes the value at path from the first root that
// defines it into target, walking roots in the order NewLoader
// received them (gradsym.cue in the working directory before the
// user config directory before /etc). It is the only lookup gradsym's
// config layer needs: each of the optimizer and executor blocks is
// read once, then layered over its package's DefaultConfig.
func (l Loader) AssignFirst(path string, target any) error {
	roots, err := l.getRoots()
	if err != nil {
		return err
	}

	cuePath := cue.ParsePath(path)
	for _, info := range roots {
		value := info.value.LookupPath(cuePath)
		if err := value.Err(); err == nil {
			return value.Decode(target)
		}
	}

	return ErrValueNotFound
}
