package networks

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Insert more Chain definitions here to support more chains.
var supportedChains = []Chain{
	EthereumSepolia,
	BaseSepolia,
	PolygonAmoy,
}

var ErrUnsupportedChain = errors.New("unsupported chain")

// UnsupportedChainError is returned for a chain name that is not in the
// registry. Suggestions holds the closest canonical names, best first.
type UnsupportedChainError struct {
	Name        string
	Suggestions []string
}

func (e *UnsupportedChainError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("unsupported chain: %s", e.Name)
	}
	return fmt.Sprintf(
		"unsupported chain: %s (did you mean %s?)",
		e.Name, strings.Join(e.Suggestions, ", "),
	)
}

func (e *UnsupportedChainError) Is(target error) bool {
	return target == ErrUnsupportedChain
}

// Registry maps chain names and alternative names to chain descriptors.
type Registry struct {
	chains []Chain
	byName map[string]int
}

func NewRegistry(chains ...Chain) (*Registry, error) {
	result := &Registry{
		chains: make([]Chain, 0, len(chains)),
		byName: map[string]int{},
	}
	for _, c := range chains {
		names := append([]string{c.Name}, c.AlternativeNames...)
		for _, n := range names {
			key := strings.ToLower(n)
			if _, found := result.byName[key]; found {
				return nil, fmt.Errorf("chain with name or alternative name of '%s' already exists", n)
			}
			result.byName[key] = len(result.chains)
		}
		result.chains = append(result.chains, c)
	}
	return result, nil
}

// Default returns a registry of the built-in chains.
func Default() *Registry {
	r, err := NewRegistry(supportedChains...)
	if err != nil {
		panic(err)
	}
	return r
}

// GetChain looks a chain up by name or alternative name, case-insensitively.
func (r *Registry) GetChain(name string) (Chain, error) {
	i, found := r.byName[strings.ToLower(strings.TrimSpace(name))]
	if !found {
		return Chain{}, &UnsupportedChainError{
			Name:        name,
			Suggestions: r.suggest(name),
		}
	}
	return r.chains[i], nil
}

// Chains returns the chains in registration order.
func (r *Registry) Chains() []Chain {
	return append([]Chain{}, r.chains...)
}

// Names returns the canonical names in registration order.
func (r *Registry) Names() []string {
	res := make([]string, 0, len(r.chains))
	for _, c := range r.chains {
		res = append(res, c.Name)
	}
	return res
}

// WithEndpoints returns a copy of the registry where the chains named in
// overrides use the given RPC endpoint. Keys may be alternative names.
func (r *Registry) WithEndpoints(overrides map[string]string) (*Registry, error) {
	result := r.clone()
	for name, endpoint := range overrides {
		endpoint = strings.TrimSpace(endpoint)
		if endpoint == "" {
			continue
		}
		i, found := result.byName[strings.ToLower(strings.TrimSpace(name))]
		if !found {
			return nil, fmt.Errorf("endpoint override: %w", &UnsupportedChainError{
				Name:        name,
				Suggestions: r.suggest(name),
			})
		}
		result.chains[i].RPCEndpoint = endpoint
	}
	return result, nil
}

// WithEnvEndpoints returns a copy of the registry where every chain whose
// NodeVariableName is set in the environment uses that endpoint.
func (r *Registry) WithEnvEndpoints(getenv func(string) string) *Registry {
	result := r.clone()
	for i, c := range result.chains {
		if c.NodeVariableName == "" {
			continue
		}
		if node := strings.TrimSpace(getenv(c.NodeVariableName)); node != "" {
			result.chains[i].RPCEndpoint = node
		}
	}
	return result
}

func (r *Registry) clone() *Registry {
	result := &Registry{
		chains: append([]Chain{}, r.chains...),
		byName: make(map[string]int, len(r.byName)),
	}
	for k, v := range r.byName {
		result.byName[k] = v
	}
	return result
}

// suggest returns up to 3 canonical chain names fuzzily matching input.
func (r *Registry) suggest(input string) []string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return nil
	}
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	sort.Strings(names)

	seen := map[string]bool{}
	res := []string{}
	for _, m := range fuzzy.Find(input, names) {
		canonical := r.chains[r.byName[m.Str]].Name
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		res = append(res, canonical)
		if len(res) == 3 {
			break
		}
	}
	return res
}
