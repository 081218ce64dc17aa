package steam

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/andygrunwald/vdf"
)

// VDFMap is a parsed VDF key-value structure (nested maps and string values).
// Keys are lowercased at parse time since Valve treats them case-insensitively.
type VDFMap = map[string]any

func parseVDF(data []byte) (VDFMap, error) {
	m, err := vdf.NewParser(bytes.NewReader(data)).Parse()
	if err != nil {
		return nil, err
	}
	return normalizeKeys(m), nil
}

func normalizeKeys(m VDFMap) VDFMap {
	out := make(VDFMap, len(m))
	for k, v := range m {
		if nested, ok := v.(VDFMap); ok {
			v = normalizeKeys(nested)
		}
		out[strings.ToLower(k)] = v
	}
	return out
}

// lookup walks nested maps along keys (lowercase)
func lookup(m VDFMap, keys ...string) (any, bool) {
	var cur any = m
	for _, k := range keys {
		node, ok := cur.(VDFMap)
		if !ok {
			return nil, false
		}
		cur, ok = node[k]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func lookupString(m VDFMap, keys ...string) string {
	v, _ := lookup(m, keys...)
	s, _ := v.(string)
	return s
}

// getLibraryPaths extracts library paths from a parsed libraryfolders.vdf root.
// Expects structure: libraryfolders -> "0","1",... -> path. Entries are
// returned in numeric key order.
func getLibraryPaths(root VDFMap) []string {
	lf, ok := root["libraryfolders"].(VDFMap)
	if !ok {
		return nil
	}

	type entry struct {
		idx  int
		path string
	}
	var entries []entry
	for k, v := range lf {
		idx, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		block, ok := v.(VDFMap)
		if !ok {
			continue
		}
		if p, ok := block["path"].(string); ok && p != "" {
			entries = append(entries, entry{idx: idx, path: p})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].idx < entries[j].idx })

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, e.path)
	}
	return paths
}

// AppManifest holds parsed fields from an appmanifest_*.acf file.
type AppManifest struct {
	AppID      string
	Name       string
	InstallDir string
	// PlatformOverride is the platform Steam runs the app as when it differs
	// from the host ("windows" for a Proton-forced app).
	PlatformOverride string
}

// ParseAppManifest parses appmanifest_*.acf content and returns AppManifest.
func ParseAppManifest(data []byte) (AppManifest, error) {
	root, err := parseVDF(data)
	if err != nil {
		return AppManifest{}, err
	}
	state, ok := root["appstate"].(VDFMap)
	if !ok {
		return AppManifest{}, fmt.Errorf("vdf: missing AppState")
	}

	m := AppManifest{
		AppID:      lookupString(state, "appid"),
		Name:       lookupString(state, "name"),
		InstallDir: lookupString(state, "installdir"),
	}
	for _, block := range []string{"userconfig", "mountedconfig"} {
		if v := lookupString(state, block, "platform_override_source"); v != "" {
			m.PlatformOverride = v
			break
		}
	}
	return m, nil
}
