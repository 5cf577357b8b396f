package effect

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/gonewx/particlefx/pkg/engine"
)

//go:embed effects/*.yaml
var libraryFS embed.FS

// Names lists the shipped effects in alphabetical order.
func Names() []string {
	entries, err := libraryFS.ReadDir("effects")
	if err != nil {
		// The directory is embedded at build time; this cannot fail at run
		// time with a well-formed binary.
		panic(fmt.Sprintf("embedded effect library unreadable: %v", err))
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// Load compiles the shipped effect with the given name.
func Load(name string) (engine.SystemConfig, error) {
	data, err := libraryFS.ReadFile(path.Join("effects", name+".yaml"))
	if err != nil {
		return engine.SystemConfig{}, fmt.Errorf("unknown effect %q: %w", name, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return engine.SystemConfig{}, fmt.Errorf("effect %q: %w", name, err)
	}
	return cfg, nil
}
