package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cryptodevs/whitelist-dapp/internal/chain"
	"github.com/cryptodevs/whitelist-dapp/internal/config"
	"github.com/cryptodevs/whitelist-dapp/internal/contract"
	"github.com/cryptodevs/whitelist-dapp/internal/ui"
)

// contractName is the registry name deployments are recorded under.
const contractName = "Whitelist"

var (
	deployArtifact string
	deployWallet   string
	deploySave     bool
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy the Whitelist contract",
	Long: `Deploy the Whitelist contract with maxWhitelistedAddresses = 10.

The creation code is read from a Hardhat or Foundry artifact, by default
artifacts/contracts/Whitelist.sol/Whitelist.json. The deployer signs with
WHITELIST_PRIVATE_KEY when set, otherwise with the default signing wallet.

On success the only line printed to stdout is:

  Whitelist Contract Address: 0x...

Examples:
  whitelist deploy
  whitelist deploy --network hardhat --rpc http://127.0.0.1:8545
  whitelist deploy --artifact ./out/Whitelist.sol/Whitelist.json --save`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		client, network, err := dial(ctx)
		if err != nil {
			return err
		}
		signer, err := resolveSigner(deployWallet)
		if err != nil {
			return err
		}

		warnIfUnfunded(ctx, cmd.ErrOrStderr(), client, signer.Address(), config.GasLimitDeploy, network)

		path := deployArtifact
		if path == "" {
			path = cfg.ArtifactPath
		}

		spin := ui.NewSpinner(fmt.Sprintf("Deploying %s to %s from %s", contractName, network.Name, ui.TruncateAddr(signer.Address())))
		spin.Start()
		res, err := runDeploy(ctx, cmd.OutOrStdout(), client, signer, network, path)
		spin.Stop()
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.ErrOrStderr(), ui.KeyValueBlock("Deployment", deploymentPairs(res, network)))
		if deploySave {
			if err := updateConfig(func(c *config.Config) error { c.ContractAddress = res.Address; return nil }); err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), ui.Success("contract_address saved to config"))
		}
		return nil
	},
}

// runDeploy deploys the artifact at path, prints the address line to out and
// records the deployment in the contract registry.
func runDeploy(ctx context.Context, out io.Writer, backend contract.Backend, signer contract.TxSigner, network *chain.Chain, path string) (*contract.DeployResult, error) {
	art, err := contract.LoadArtifact(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s artifact: %w", contractName, err)
	}

	log.Info("deploying",
		zap.String("artifact", path),
		zap.String("network", network.Name),
		zap.String("deployer", signer.Address()),
		zap.Uint8("maxWhitelistedAddresses", config.MaxWhitelistedAddresses),
	)
	res, err := contract.Deploy(ctx, backend, signer, art, config.MaxWhitelistedAddresses)
	if err != nil {
		return nil, fmt.Errorf("deploying %s: %w", contractName, err)
	}
	log.Info("deployed",
		zap.String("address", res.Address),
		zap.String("tx", res.TxHash),
		zap.Uint64("block", res.BlockNumber),
		zap.Uint64("gasUsed", res.GasUsed),
	)

	fmt.Fprintf(out, "Whitelist Contract Address: %s\n", res.Address)

	// The contract is live at this point; a registry failure only warns.
	if err := recordDeployment(network, res); err != nil {
		log.Warn("recording deployment failed", zap.Error(err))
	}
	return res, nil
}

func recordDeployment(network *chain.Chain, res *contract.DeployResult) error {
	reg := newContractRegistry()
	if err := reg.Load(); err != nil {
		return err
	}
	reg.Add(&contract.Entry{
		Name:        contractName,
		Network:     network.Name,
		ChainID:     res.ChainID,
		Address:     res.Address,
		TxHash:      res.TxHash,
		Deployer:    res.Deployer,
		BlockNumber: res.BlockNumber,
		DeployedAt:  time.Now().UTC().Format(time.RFC3339),
	})
	return reg.Save()
}

func deploymentPairs(res *contract.DeployResult, network *chain.Chain) [][2]string {
	pairs := [][2]string{
		{"Network", fmt.Sprintf("%s (%d)", network.DisplayName, res.ChainID)},
		{"Address", res.Address},
		{"Tx", res.TxHash},
		{"Block", fmt.Sprintf("%d", res.BlockNumber)},
		{"Gas used", fmt.Sprintf("%d", res.GasUsed)},
		{"Deployer", res.Deployer},
	}
	if url := network.AddressURL(res.Address); url != "" {
		pairs = append(pairs, [2]string{"Explorer", url})
	}
	if res.ChainID != cfg.ExpectedChainID {
		pairs = append(pairs, [2]string{"Note", fmt.Sprintf("the client expects chain %d; set expected_chain_id to use this deployment", cfg.ExpectedChainID)})
	}
	return pairs
}

func init() {
	deployCmd.Flags().StringVar(&deployArtifact, "artifact", "", "Hardhat/Foundry artifact (default from config)")
	deployCmd.Flags().StringVarP(&deployWallet, "wallet", "w", "", "signing wallet (default wallet if empty)")
	deployCmd.Flags().BoolVar(&deploySave, "save", false, "write the address to config.json as contract_address")
}
