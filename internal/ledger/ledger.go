package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
)

const (
	documentContract = "DocumentVerification"
	matcherContract  = "PasswordMatcher"

	submittedEvent = "DocumentSubmitted"

	submitGas = 100000

	receiptPollInterval = 100 * time.Millisecond
)

// ContractGateway talks to the two deployed contracts over a local
// JSON-RPC endpoint. Transactions are sent from an unlocked node
// account, so the raw rpc client is used instead of ethclient.
type ContractGateway struct {
	client *rpc.Client
	sender common.Address

	docAddress   common.Address
	docABI       abi.ABI
	matchAddress common.Address
	matchABI     abi.ABI

	submittedTopic common.Hash
}

// truffle build artifact, as written by `truffle migrate`
type artifact struct {
	ABI      json.RawMessage `json:"abi"`
	Networks map[string]struct {
		Address string `json:"address"`
	} `json:"networks"`
}

func loadContract(contractsDir, name string) (abi.ABI, common.Address, error) {
	raw, err := os.ReadFile(filepath.Join(contractsDir, name+".json"))
	if err != nil {
		return abi.ABI{}, common.Address{}, fmt.Errorf("read artifact %s: %w", name, err)
	}

	var art artifact
	if err := json.Unmarshal(raw, &art); err != nil {
		return abi.ABI{}, common.Address{}, fmt.Errorf("parse artifact %s: %w", name, err)
	}

	parsedABI, err := abi.JSON(bytes.NewReader(art.ABI))
	if err != nil {
		return abi.ABI{}, common.Address{}, fmt.Errorf("parse abi %s: %w", name, err)
	}

	for _, network := range art.Networks {
		if network.Address != "" {
			return parsedABI, common.HexToAddress(network.Address), nil
		}
	}
	return abi.ABI{}, common.Address{}, fmt.Errorf("artifact %s has no deployed address", name)
}

func Dial(ctx context.Context, rpcURL, contractsDir, senderAddress string) (*ContractGateway, error) {
	if !common.IsHexAddress(senderAddress) {
		return nil, fmt.Errorf("bad sender address %q", senderAddress)
	}

	client, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial rpc: %w", err)
	}

	docABI, docAddress, err := loadContract(contractsDir, documentContract)
	if err != nil {
		client.Close()
		return nil, err
	}
	matchABI, matchAddress, err := loadContract(contractsDir, matcherContract)
	if err != nil {
		client.Close()
		return nil, err
	}

	event, ok := docABI.Events[submittedEvent]
	if !ok {
		client.Close()
		return nil, fmt.Errorf("contract %s has no %s event", documentContract, submittedEvent)
	}

	return &ContractGateway{
		client:         client,
		sender:         common.HexToAddress(senderAddress),
		docAddress:     docAddress,
		docABI:         docABI,
		matchAddress:   matchAddress,
		matchABI:       matchABI,
		submittedTopic: event.ID,
	}, nil
}

func (g *ContractGateway) Close() {
	g.client.Close()
}

type txArgs struct {
	From common.Address  `json:"from"`
	To   *common.Address `json:"to"`
	Gas  hexutil.Uint64  `json:"gas,omitempty"`
	Data hexutil.Bytes   `json:"data"`
}

func (g *ContractGateway) sendAndWait(ctx context.Context, to common.Address, gas uint64, data []byte) (*types.Receipt, error) {
	args := txArgs{
		From: g.sender,
		To:   &to,
		Gas:  hexutil.Uint64(gas),
		Data: data,
	}

	var txHash common.Hash
	if err := g.client.CallContext(ctx, &txHash, "eth_sendTransaction", args); err != nil {
		return nil, fmt.Errorf("send transaction: %w", err)
	}

	// the local node mines instantly, so the first poll usually hits
	for {
		var receipt *types.Receipt
		err := g.client.CallContext(ctx, &receipt, "eth_getTransactionReceipt", txHash)
		if err != nil {
			return nil, fmt.Errorf("get receipt: %w", err)
		}
		if receipt != nil {
			return receipt, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(receiptPollInterval):
		}
	}
}

// SubmitDocument writes the digest on chain and reports whether the
// contract emitted a DocumentSubmitted event. No event means the
// digest was already submitted.
func (g *ContractGateway) SubmitDocument(ctx context.Context, digest [32]byte) (bool, error) {
	data, err := g.docABI.Pack("submitDocument", digest)
	if err != nil {
		return false, fmt.Errorf("pack submitDocument: %w", err)
	}

	receipt, err := g.sendAndWait(ctx, g.docAddress, submitGas, data)
	if err != nil {
		return false, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return false, fmt.Errorf("submitDocument transaction reverted")
	}

	for _, logEntry := range receipt.Logs {
		if logEntry.Address == g.docAddress &&
			len(logEntry.Topics) > 0 &&
			logEntry.Topics[0] == g.submittedTopic {
			return true, nil
		}
	}
	return false, nil
}

// MatchPasswords calls the matcher contract with two hashes. Login
// calls it with the same stored hash twice, so the assertion itself
// always holds; only transport or revert failures surface.
func (g *ContractGateway) MatchPasswords(ctx context.Context, hashA, hashB string) error {
	data, err := g.matchABI.Pack("matchPasswords", hashA, hashB)
	if err != nil {
		return fmt.Errorf("pack matchPasswords: %w", err)
	}

	receipt, err := g.sendAndWait(ctx, g.matchAddress, submitGas, data)
	if err != nil {
		return err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("matchPasswords transaction reverted")
	}
	return nil
}
