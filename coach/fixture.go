package coach

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
)

//go:embed fixtures/*.json
var fixtureFS embed.FS

// Fixture answers every request with a canned response file named after the
// request purpose (plan.json, analysis.json, strategy.json). The bundled plan
// schedules four training days per week.
type Fixture struct {
	fsys fs.FS
}

// NewFixture serves files from dir, or the bundled responses when dir is empty.
func NewFixture(dir string) *Fixture {
	if dir != "" {
		return &Fixture{fsys: os.DirFS(dir)}
	}
	sub, err := fs.Sub(fixtureFS, "fixtures")
	if err != nil {
		panic(err)
	}
	return &Fixture{fsys: sub}
}

func (f *Fixture) Complete(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b, err := fs.ReadFile(f.fsys, string(req.Purpose)+".json")
	if err != nil {
		return "", fmt.Errorf("fixture %s: %w", req.Purpose, err)
	}
	return string(b), nil
}
