package solana

// Environment is a named cluster with a public RPC endpoint.
type Environment string

const (
	EnvironmentDev  Environment = "https://api.devnet.solana.com"
	EnvironmentTest Environment = "https://api.testnet.solana.com"
	EnvironmentProd Environment = "https://api.mainnet-beta.solana.com"
)

// ResolveEndpoint maps a cluster alias to its public RPC endpoint. Anything
// that is not a known alias is returned unchanged, so explicit URLs pass
// through.
func ResolveEndpoint(s string) string {
	switch s {
	case "devnet", "dev":
		return string(EnvironmentDev)
	case "testnet", "test":
		return string(EnvironmentTest)
	case "mainnet", "mainnet-beta", "prod":
		return string(EnvironmentProd)
	default:
		return s
	}
}
