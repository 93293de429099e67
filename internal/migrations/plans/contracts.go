package plans

const (
	ContractNameBrainz           = "Brainz"
	ContractNameFeeApprover      = "FeeApprover"
	ContractNameLaunchPad        = "LaunchPad"
	ContractNameWhiteList        = "WhiteList"
	ContractNameLinearAllocation = "LinearAllocation"
	ContractNameFlatAllocation   = "FlatAllocation"
	ContractNameSnapshot         = "Snapshot"
	ContractNameNerdBridge       = "NerdBridge"
	ContractNameSampleERC20      = "SampleERC20"
)

// StepNameNerdSampleERC20 is the SampleERC20 the bridge uses off the primary
// network. It has its own record so 3_deploy_sample does not replace it.
const StepNameNerdSampleERC20 = "NerdSampleERC20"

// Environment keys and override tables the plans read from the network context.
const (
	EnvApprover                      = "approver"
	EnvLaunchpadApprover             = "launchpad-approver"
	EnvNerdToken                     = "nerd-token"
	EnvBridgeAllowedChainsPrimary    = "bridge-allowed-chains.primary"
	EnvBridgeAllowedChainsNonPrimary = "bridge-allowed-chains.non-primary"

	OverrideUSDTContracts = "usdt-contracts"
)

// AuxNerdAddress is the record field holding the token a NerdBridge was deployed for.
const AuxNerdAddress = "nerdaddress"
