package networks_test

import (
	"errors"
	"testing"

	"github.com/tranvictor/balancewatch/networks"
)

func TestDefaultRegistry(t *testing.T) {
	r := networks.Default()
	for _, name := range []string{"ethereum", "Sepolia", "base", "base-sepolia", "polygon", "amoy"} {
		c, err := r.GetChain(name)
		if err != nil {
			t.Fatalf("GetChain(%s): %s", name, err)
		}
		if c.TokenDecimals != 6 || c.TokenSymbol != "USDC" {
			t.Fatalf("GetChain(%s): unexpected token %s/%d", name, c.TokenSymbol, c.TokenDecimals)
		}
	}
	c, _ := r.GetChain("sepolia")
	if c.Name != "ethereum" {
		t.Fatalf("alternative name should resolve to the canonical chain, got %s", c.Name)
	}
}

func TestUnsupportedChainSuggests(t *testing.T) {
	_, err := networks.Default().GetChain("eth")
	if !errors.Is(err, networks.ErrUnsupportedChain) {
		t.Fatalf("want ErrUnsupportedChain, got %v", err)
	}
	var uerr *networks.UnsupportedChainError
	if !errors.As(err, &uerr) {
		t.Fatalf("want *UnsupportedChainError, got %T", err)
	}
	if len(uerr.Suggestions) == 0 || uerr.Suggestions[0] != "ethereum" {
		t.Fatalf("want ethereum suggested, got %v", uerr.Suggestions)
	}
}

func TestDuplicateNamesRejected(t *testing.T) {
	a := networks.Chain{Name: "one", AlternativeNames: []string{"shared"}}
	b := networks.Chain{Name: "two", AlternativeNames: []string{"Shared"}}
	if _, err := networks.NewRegistry(a, b); err == nil {
		t.Fatalf("expected duplicate alternative name to be rejected")
	}
}

func TestEndpointOverrides(t *testing.T) {
	base := networks.Default()
	withYAML, err := base.WithEndpoints(map[string]string{"amoy": "http://yaml-amoy", "base": "http://yaml-base"})
	if err != nil {
		t.Fatalf("WithEndpoints: %s", err)
	}
	env := map[string]string{"BASE_SEPOLIA_NODE": " http://env-base "}
	final := withYAML.WithEnvEndpoints(func(k string) string { return env[k] })

	polygon, _ := final.GetChain("polygon")
	if polygon.RPCEndpoint != "http://yaml-amoy" {
		t.Fatalf("polygon: want yaml endpoint, got %s", polygon.RPCEndpoint)
	}
	b, _ := final.GetChain("base")
	if b.RPCEndpoint != "http://env-base" {
		t.Fatalf("base: env should win over yaml, got %s", b.RPCEndpoint)
	}
	eth, _ := final.GetChain("ethereum")
	if eth.RPCEndpoint != networks.EthereumSepolia.RPCEndpoint {
		t.Fatalf("ethereum: want built-in endpoint, got %s", eth.RPCEndpoint)
	}
	orig, _ := base.GetChain("base")
	if orig.RPCEndpoint != networks.BaseSepolia.RPCEndpoint {
		t.Fatalf("overrides must not modify the source registry")
	}

	if _, err := base.WithEndpoints(map[string]string{"solana": "http://x"}); !errors.Is(err, networks.ErrUnsupportedChain) {
		t.Fatalf("override for unknown chain: want ErrUnsupportedChain, got %v", err)
	}
}
