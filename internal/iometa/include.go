package iometa

import (
	"bufio"
	"io"
	"strings"

	"github.com/gnames/gnsubsample/internal/iofs"
)

// ReadIncludeFile reads identifiers that must always be selected.
func ReadIncludeFile(path string) ([]string, error) {
	f, err := iofs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	res, err := ReadInclude(f)
	if err != nil {
		return nil, ReadIncludeError(path, err)
	}
	return res, nil
}

// ReadInclude reads one identifier per line. Empty lines and text after
// '#' are ignored. Repeated identifiers are returned once.
func ReadInclude(r io.Reader) ([]string, error) {
	var res []string
	seen := make(map[string]struct{})
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line, _, _ := strings.Cut(sc.Text(), "#")
		id := strings.TrimSpace(line)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		res = append(res, id)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
