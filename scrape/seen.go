// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package scrape

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultSeenFile is where article links are recorded by default.
const DefaultSeenFile = "data/read_articles.txt"

// SeenLinks is an append-only file of links already handed out, one per line.
type SeenLinks struct {
	path  string
	links map[string]struct{}
	mu    sync.Mutex
}

// LoadSeenLinks reads the file at path. A missing file yields an empty set,
// and its parent directory is created so later appends succeed.
func LoadSeenLinks(path string) (*SeenLinks, error) {
	s := &SeenLinks{
		path:  path,
		links: make(map[string]struct{}),
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create seen links directory: %w", err)
			}
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open seen links: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			s.links[line] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read seen links: %w", err)
	}

	return s, nil
}

// Path returns the backing file path.
func (s *SeenLinks) Path() string {
	return s.path
}

// Contains reports whether link has been recorded.
func (s *SeenLinks) Contains(link string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.links[link]
	return ok
}

// Len returns the number of recorded links.
func (s *SeenLinks) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.links)
}

// Append records links not already present, writing them to the end of the file.
func (s *SeenLinks) Append(links ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	fresh := make([]string, 0, len(links))
	for _, link := range links {
		if _, ok := s.links[link]; ok || link == "" {
			continue
		}
		s.links[link] = struct{}{}
		fresh = append(fresh, link)
		b.WriteString(link)
		b.WriteByte('\n')
	}
	if len(fresh) == 0 {
		return nil
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		for _, link := range fresh {
			delete(s.links, link)
		}
		return fmt.Errorf("failed to open seen links for append: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("failed to append seen links: %w", err)
	}
	return nil
}
