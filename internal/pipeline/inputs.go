package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Input is one section to render: a file on disk, or inline markup
// (fetched pages arrive that way).
type Input struct {
	Name   string
	Path   string
	Markup string
}

// CollectFiles wraps explicit file paths as inputs, keeping argument order.
func CollectFiles(paths []string) ([]Input, error) {
	out := make([]Input, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			dirInputs, err := CollectDir(p)
			if err != nil {
				return nil, err
			}
			out = append(out, dirInputs...)
			continue
		}

		out = append(out, Input{Name: filepath.Base(p), Path: p})
	}

	return out, nil
}

// CollectDir lists a directory's section files (*.html, which covers the
// theme's *.liquid.html exports), sorted by name.
func CollectDir(dir string) ([]Input, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var out []Input
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".html") {
			continue
		}

		out = append(out, Input{Name: name, Path: filepath.Join(dir, name)})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	if len(out) == 0 {
		return nil, fmt.Errorf("no section files in %s", dir)
	}

	return out, nil
}

// SelectSections narrows inputs by 1-based index: "3" picks one, "2-4" a
// range, "1,3" a list. An empty expression keeps everything.
func SelectSections(all []Input, expr string) ([]Input, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return all, nil
	}

	if strings.Contains(expr, ",") {
		return selectList(all, expr)
	}
	if strings.Contains(expr, "-") {
		return selectRange(all, expr)
	}

	idx, err := strconv.Atoi(expr)
	if err != nil || idx <= 0 || idx > len(all) {
		return nil, fmt.Errorf("invalid section index %q", expr)
	}

	return []Input{all[idx-1]}, nil
}

func selectRange(all []Input, rng string) ([]Input, error) {
	parts := strings.Split(rng, "-")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid section range %q", rng)
	}

	start, err1 := atoi(parts[0])
	end, err2 := atoi(parts[1])
	if err1 != nil || err2 != nil {
		return nil, fmt.Errorf("invalid section range %q", rng)
	}
	if start <= 0 || end <= 0 || start > end || end > len(all) {
		return nil, fmt.Errorf("section range %q out of bounds (1-%d)", rng, len(all))
	}

	return all[start-1 : end], nil
}

func selectList(all []Input, list string) ([]Input, error) {
	out := []Input{}
	for _, n := range strings.Split(list, ",") {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}

		idx, err := atoi(n)
		if err != nil || idx <= 0 || idx > len(all) {
			return nil, fmt.Errorf("invalid section index %q", n)
		}

		out = append(out, all[idx-1])
	}

	return out, nil
}

func atoi(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

var reUnderscore = regexp.MustCompile(`_+`)

// Slug turns a section name into a safe output file stem.
func Slug(s string) string {
	s = strings.ToLower(s)

	repl := []string{
		"•", "_",
		"-", "_",
		"—", "_",
		"–", "_",
		"/", "_",
		"\\", "_",
		".", "_",
		" ", "_",
		"(", "",
		")", "",
	}
	for i := 0; i < len(repl); i += 2 {
		s = strings.ReplaceAll(s, repl[i], repl[i+1])
	}

	clean := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			clean = append(clean, r)
		}
	}
	s = string(clean)

	s = reUnderscore.ReplaceAllString(s, "_")

	return strings.Trim(s, "_")
}

// OutputName maps a section name to its rendered file name.
func OutputName(name string) string {
	base := strings.TrimSuffix(name, ".html")
	base = strings.TrimSuffix(base, ".liquid")

	return Slug(base) + ".html"
}
