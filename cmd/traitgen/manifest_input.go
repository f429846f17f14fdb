package main

import (
	"fmt"

	"traitgen/internal/diag"
	"traitgen/internal/manifest"
	"traitgen/internal/shape"
)

// loadShapes reads a manifest and converts its declarations into type shapes.
// Conversion problems land in the returned bag as warnings; only file-level
// failures (missing file, TOML syntax) come back as an error.
func loadShapes(path string, maxDiag int) (*shape.Interner, []*shape.TypeShape, *diag.Bag, error) {
	f, err := manifest.Load(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load manifest: %w", err)
	}

	in := shape.NewInterner()
	bag := diag.NewBag(maxDiag)
	shapes := manifest.Shapes(f, in, diag.BagReporter{Bag: bag})
	if len(shapes) == 0 && !bag.HasWarnings() {
		return nil, nil, nil, fmt.Errorf("manifest %s declares no types", path)
	}
	return in, shapes, bag, nil
}

// typeNames lists every shape's qualified name in input order.
func typeNames(shapes []*shape.TypeShape) []string {
	names := make([]string, len(shapes))
	for i, s := range shapes {
		names[i] = s.Ref.String()
	}
	return names
}
