package gdbjs

import (
	"context"
	"encoding/json"
	"strings"
)

// SourceFilesOptions narrows a SourceFiles call to one thread group and/or
// filters results by pattern (a substring match against each file path).
type SourceFilesOptions struct {
	Group   *ThreadGroup
	Pattern string
}

// SourceFiles lists known source files. Called with a Group, it queries
// that target directly. Called globally, it queries every thread group
// and deduplicates, preserving first-occurrence order; that global
// result is memoized until ReInit invalidates it.
func (c *Client) SourceFiles(ctx context.Context, opts *SourceFilesOptions) ([]string, error) {
	if opts != nil && opts.Group != nil {
		files, err := c.sourceFilesForGroup(ctx, *opts.Group)
		if err != nil {
			return nil, err
		}
		return filterPattern(files, opts.Pattern), nil
	}

	c.sourceFilesOnce.Do(func() {
		c.sourceFilesCache, c.sourceFilesErr = c.collectAllSourceFiles(ctx)
	})
	if c.sourceFilesErr != nil {
		return nil, c.sourceFilesErr
	}
	pattern := ""
	if opts != nil {
		pattern = opts.Pattern
	}
	return filterPattern(c.sourceFilesCache, pattern), nil
}

func (c *Client) collectAllSourceFiles(ctx context.Context) ([]string, error) {
	groups, err := c.ThreadGroups(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var ordered []string
	for _, g := range groups {
		files, err := c.sourceFilesForGroup(ctx, g)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if _, dup := seen[f]; dup {
				continue
			}
			seen[f] = struct{}{}
			ordered = append(ordered, f)
		}
	}
	return ordered, nil
}

func (c *Client) sourceFilesForGroup(ctx context.Context, group ThreadGroup) ([]string, error) {
	body, err := c.ExecCLI(ctx, "sources", ForThreadGroup(group.ID))
	if err != nil {
		return nil, err
	}
	var files []string
	if err := json.Unmarshal([]byte(body), &files); err != nil {
		return nil, &ProtocolError{Reason: "sources: malformed JSON payload: " + err.Error()}
	}
	return files, nil
}

func filterPattern(files []string, pattern string) []string {
	if pattern == "" {
		return files
	}
	var out []string
	for _, f := range files {
		if strings.Contains(f, pattern) {
			out = append(out, f)
		}
	}
	return out
}
