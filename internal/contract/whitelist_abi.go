package contract

// WhitelistID is the built-in key of the Whitelist contract.
const WhitelistID = "whitelist"

// Whitelist is a bounded allow-list: the owner fixes the capacity at
// deployment and any address may add itself once.
//
// Function selectors:
//
//	addAddressToWhitelist()        → 0x8e7314d9
//	numAddressesWhitelisted()      → 0x4011d7cd
//	whitelistedAddresses(address)  → 0x06c933d8
//	maxWhitelistedAddresses()      → 0x31a72188
func init() {
	RegisterBuiltin(BuiltinKind{
		ID:          WhitelistID,
		Name:        "Whitelist",
		Description: "Bounded whitelist: constructor(uint8 max), self-service join, member count.",
		ABI:         whitelistABI,
	})
}

var whitelistABI = []ABIEntry{
	{
		Type:            "constructor",
		Inputs:          []ABIParam{{Name: "_maxWhitelistedAddresses", Type: "uint8", InternalType: "uint8"}},
		StateMutability: "nonpayable",
	},
	{
		Name: "addAddressToWhitelist", Type: "function",
		Inputs: []ABIParam{}, Outputs: []ABIParam{},
		StateMutability: "nonpayable",
	},
	{
		Name: "maxWhitelistedAddresses", Type: "function",
		Inputs: []ABIParam{}, Outputs: []ABIParam{{Name: "", Type: "uint8", InternalType: "uint8"}},
		StateMutability: "view",
	},
	{
		Name: "numAddressesWhitelisted", Type: "function",
		Inputs: []ABIParam{}, Outputs: []ABIParam{{Name: "", Type: "uint8", InternalType: "uint8"}},
		StateMutability: "view",
	},
	{
		Name: "whitelistedAddresses", Type: "function",
		Inputs:          []ABIParam{{Name: "", Type: "address", InternalType: "address"}},
		Outputs:         []ABIParam{{Name: "", Type: "bool", InternalType: "bool"}},
		StateMutability: "view",
	},
}
