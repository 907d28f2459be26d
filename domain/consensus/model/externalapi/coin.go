package externalapi

// Coin houses details about a spendable transaction output as tracked by the
// UTXO set: the output itself, the height of the block that created it, and
// whether a later transaction already consumed it.
type Coin struct {
	Output *DomainTransactionOutput
	Height uint64
	Spent  bool
}

// IsStandard returns whether this coin is a standard value-bearing output
func (c *Coin) IsStandard() bool {
	return c.Output != nil && c.Output.Kind == OutputKindStandard
}

// SpentCoin is a Coin retained past its spend for a bounded reorg window,
// together with the height at which the spend was connected.
type SpentCoin struct {
	Coin        *Coin
	SpentHeight uint64
}
