package reveal

import "github.com/matzehuels/addrscope/pkg/graph"

// Reference addresses.
const (
	AddrMEXC         = "0x75e89d5979e4f6fba9f97c104c2f0afb3f1dcb88"
	AddrUnstETH      = "0x889edc2edab5f40e902b864ad4d7ade8e412f9b1"
	AddrUnmarked     = "0x6a2b402b710c746de3fc064090ca1eab109a0e31"
	AddrStake        = "0x974caa59e49682cda0ad2bbe82983419a2ecc400"
	AddrERC1967Proxy = "0x31e91a09611e1d647b992d72181aa97f32e5bb58"
)

const epoch = "1970-01-01 00:00:00"

func ethNode(addr, typ, name string, notOpen bool) graph.Node {
	return graph.Node{
		Address:     addr,
		Type:        typ,
		AddressName: name,
		UpdatedAt:   epoch,
		CreatedAt:   epoch,
		Tokens:      []any{},
		Networks:    []string{"Ethereum"},
		NotOpen:     notOpen,
	}
}

// InitialGraph is the bootstrap graph of the reference dataset.
var InitialGraph = graph.Subgraph{
	Nodes: []graph.Node{
		ethNode(AddrMEXC, graph.TypeCEX, "MEXC", true),
		ethNode(AddrUnstETH, graph.TypeStakingPool, "Lido: stETH Withdrawal NFT (unstETH)", true),
	},
	Links: []graph.Link{
		{Source: AddrMEXC, Target: AddrUnstETH, Label: "Link 1"},
	},
}

// StepTwoGraph is revealed by the first successful click.
var StepTwoGraph = graph.Subgraph{
	Nodes: []graph.Node{
		ethNode(AddrUnmarked, graph.TypeUnmarked, "", false),
		ethNode(AddrStake, graph.TypeGambling, "Stake.com", false),
	},
	Links: []graph.Link{},
}

// StepThreeGraph is revealed by the second successful click. It repeats
// MEXC, which the merge keeps as the already-present node.
var StepThreeGraph = graph.Subgraph{
	Nodes: []graph.Node{
		ethNode(AddrERC1967Proxy, graph.TypeSmartContract, "ERC1967Proxy", true),
		ethNode(AddrMEXC, graph.TypeCEX, "MEXC", true),
	},
	Links: []graph.Link{},
}
