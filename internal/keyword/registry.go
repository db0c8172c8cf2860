package keyword

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"renamer/internal/textutil"
)

// Marker prefixes every trigger token.
const Marker = "%"

// ErrNotApplicable reports that a resolver could not produce a value for a file.
var ErrNotApplicable = errors.New("keyword not applicable")

// Resolver derives a replacement value from the file at path.
type Resolver interface {
	Resolve(ctx context.Context, path string) (string, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, path string) (string, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(ctx context.Context, path string) (string, error) {
	return f(ctx, path)
}

// Trigger is a registered token and its resolver.
type Trigger struct {
	Token       string
	Description string
	Resolver    Resolver
}

// Registry holds the trigger tokens known to a run. Register everything during
// startup; Replace does not mutate the registry.
type Registry struct {
	triggers []Trigger
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a trigger. Tokens must start with Marker and be unique.
func (r *Registry) Register(token, description string, resolver Resolver) error {
	if !strings.HasPrefix(token, Marker) || len(token) <= len(Marker) {
		return fmt.Errorf("register keyword %q: token must start with %q", token, Marker)
	}
	if resolver == nil {
		return fmt.Errorf("register keyword %q: nil resolver", token)
	}
	for _, existing := range r.triggers {
		if existing.Token == token {
			return fmt.Errorf("register keyword %q: already registered", token)
		}
	}
	r.triggers = append(r.triggers, Trigger{Token: token, Description: description, Resolver: resolver})
	// Longest first so "%resolution" wins over "%res" at the same offset.
	sort.SliceStable(r.triggers, func(i, j int) bool {
		if len(r.triggers[i].Token) != len(r.triggers[j].Token) {
			return len(r.triggers[i].Token) > len(r.triggers[j].Token)
		}
		return r.triggers[i].Token < r.triggers[j].Token
	})
	return nil
}

// Triggers returns the registered triggers ordered by token.
func (r *Registry) Triggers() []Trigger {
	if r == nil {
		return nil
	}
	out := make([]Trigger, len(r.triggers))
	copy(out, r.triggers)
	sort.Slice(out, func(i, j int) bool { return out[i].Token < out[j].Token })
	return out
}

// Replace substitutes every registered token found in candidate. Each token
// present is resolved once against originalPath. Values are sanitized for use
// inside a file name and substituted in a single pass, so a resolved value is
// never rescanned for tokens.
func (r *Registry) Replace(ctx context.Context, candidate, originalPath string) (string, error) {
	if r == nil || len(r.triggers) == 0 || !strings.Contains(candidate, Marker) {
		return candidate, nil
	}

	var pairs []string
	for _, trigger := range r.triggers {
		if !strings.Contains(candidate, trigger.Token) {
			continue
		}
		value, err := trigger.Resolver.Resolve(ctx, originalPath)
		if err != nil {
			if errors.Is(err, ErrNotApplicable) {
				return "", fmt.Errorf("%s for %s: %w", trigger.Token, originalPath, err)
			}
			return "", fmt.Errorf("%s for %s: %w: %v", trigger.Token, originalPath, ErrNotApplicable, err)
		}
		value = textutil.SanitizeFileName(value)
		if value == "" {
			return "", fmt.Errorf("%s for %s: %w: empty value", trigger.Token, originalPath, ErrNotApplicable)
		}
		pairs = append(pairs, trigger.Token, value)
	}
	if len(pairs) == 0 {
		return candidate, nil
	}
	return strings.NewReplacer(pairs...).Replace(candidate), nil
}
