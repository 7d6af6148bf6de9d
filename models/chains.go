package models

import (
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Chain is a network supported by the wallet service.
type Chain string

const (
	ChainEthereum     Chain = "ethereum"
	ChainBase         Chain = "base"
	ChainSepolia      Chain = "sepolia"
	ChainBaseSepolia  Chain = "base-sepolia"
	ChainTempo        Chain = "tempo"
	ChainTempoMainnet Chain = "tempo-mainnet"
	ChainSolana       Chain = "solana"
	ChainSolanaDevnet Chain = "solana-devnet"
)

// AllChains lists every chain in display order.
var AllChains = []Chain{
	ChainEthereum,
	ChainBase,
	ChainSepolia,
	ChainBaseSepolia,
	ChainTempo,
	ChainTempoMainnet,
	ChainSolana,
	ChainSolanaDevnet,
}

// ChainIDs maps each chain to its numeric id. Tempo and Solana ids are
// service-assigned constants, not public network ids.
var ChainIDs = map[Chain]int64{
	ChainEthereum:     1,
	ChainBase:         8453,
	ChainSepolia:      11155111,
	ChainBaseSepolia:  84532,
	ChainTempo:        42431,
	ChainTempoMainnet: 4217,
	ChainSolana:       101,
	ChainSolanaDevnet: 102,
}

var chainNames = func() map[int64]Chain {
	names := make(map[int64]Chain, len(ChainIDs))
	for chain, id := range ChainIDs {
		names[id] = chain
	}
	return names
}()

// ChainFromID resolves a numeric chain id.
func ChainFromID(id int64) (Chain, bool) {
	chain, ok := chainNames[id]
	return chain, ok
}

// ParseChain validates a chain name.
func ParseChain(name string) (Chain, error) {
	chain := Chain(name)
	if !chain.Valid() {
		return "", Invalid("unknown chain: %s", name)
	}
	return chain, nil
}

// Family groups chains by address format and transfer endpoint.
type Family string

const (
	FamilyEVM    Family = "evm"
	FamilySolana Family = "solana"
	FamilyTempo  Family = "tempo"
)

func (c Chain) String() string {
	return string(c)
}

// Valid reports whether c is a known chain.
func (c Chain) Valid() bool {
	_, ok := ChainIDs[c]
	return ok
}

// ID returns the numeric chain id, or 0 for an unknown chain.
func (c Chain) ID() int64 {
	return ChainIDs[c]
}

func (c Chain) Family() Family {
	switch c {
	case ChainSolana, ChainSolanaDevnet:
		return FamilySolana
	case ChainTempo, ChainTempoMainnet:
		return FamilyTempo
	default:
		return FamilyEVM
	}
}

// IsEVM is true for the EVM transfer chains. Tempo is EVM-shaped but routed separately.
func (c Chain) IsEVM() bool {
	switch c {
	case ChainEthereum, ChainBase, ChainSepolia, ChainBaseSepolia:
		return true
	}
	return false
}

func (c Chain) IsSolana() bool {
	return c.Family() == FamilySolana
}

func (c Chain) IsTempo() bool {
	return c.Family() == FamilyTempo
}

func (c Chain) IsMainnet() bool {
	switch c {
	case ChainEthereum, ChainBase, ChainTempoMainnet, ChainSolana:
		return true
	}
	return false
}

// ChainType is the wallet's address family as reported by the API.
type ChainType string

const (
	ChainTypeEVM    ChainType = "evm"
	ChainTypeSolana ChainType = "solana"
)

// Currency is a transferable asset.
type Currency string

const (
	CurrencyETH     Currency = "ETH"
	CurrencySOL     Currency = "SOL"
	CurrencyUSDC    Currency = "USDC"
	CurrencyPathUSD Currency = "pathUSD"
)

func (c Currency) Valid() bool {
	switch c {
	case CurrencyETH, CurrencySOL, CurrencyUSDC, CurrencyPathUSD:
		return true
	}
	return false
}

// SupportedOn reports whether currency c may be sent on chain.
func (c Currency) SupportedOn(chain Chain) bool {
	switch chain.Family() {
	case FamilySolana:
		return c == CurrencySOL || c == CurrencyUSDC
	case FamilyTempo:
		return c == CurrencyPathUSD
	default:
		return c == CurrencyETH || c == CurrencyUSDC
	}
}

var solanaAddressPattern = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,44}$`)

// IsEVMAddress accepts 0x followed by 40 hex characters.
func IsEVMAddress(address string) bool {
	return strings.HasPrefix(address, "0x") && common.IsHexAddress(address)
}

// IsSolanaAddress accepts a 32-44 character base58 string.
func IsSolanaAddress(address string) bool {
	return solanaAddressPattern.MatchString(address)
}

// IsAddress accepts either address family.
func IsAddress(address string) bool {
	return IsEVMAddress(address) || IsSolanaAddress(address)
}

// ValidAddressFor checks the address shape against the chain family.
func ValidAddressFor(chain Chain, address string) bool {
	if chain.IsSolana() {
		return IsSolanaAddress(address)
	}
	return IsEVMAddress(address)
}

// ChecksumAddress returns the EIP-55 form of an EVM address and leaves other
// addresses untouched.
func ChecksumAddress(address string) string {
	if !IsEVMAddress(address) {
		return address
	}
	return common.HexToAddress(address).Hex()
}
