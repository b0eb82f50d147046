package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
)

// SolanaLedgerService é o serviço de transferência do ledger (programa SPL
// Token na Solana). As contas de token são custodiais: o FeePayer do backend é
// a autoridade delegada das contas e dos escrows, e paga as taxas de rede.
type SolanaLedgerService struct {
	RPCClient *rpc.Client
	FeePayer  solana.PrivateKey
}

// NewSolanaLedgerService cria o serviço conectado ao RPC da Solana.
func NewSolanaLedgerService(rpcEndpoint, feePayerKeyBase58 string) (*SolanaLedgerService, error) {
	feePayer, err := solana.PrivateKeyFromBase58(feePayerKeyBase58)
	if err != nil {
		return nil, fmt.Errorf("falha ao carregar chave privada do Fee Payer: %w", err)
	}

	return &SolanaLedgerService{
		RPCClient: rpc.New(rpcEndpoint),
		FeePayer:  feePayer,
	}, nil
}

// Mint cunha tokens para a carteira destinatária. A autoridade de mint é o
// FeePayer (configurada na criação do mint).
func (s *SolanaLedgerService) Mint(mintAddress, recipient string, amount uint64) (string, error) {
	mint, err := solana.PublicKeyFromBase58(mintAddress)
	if err != nil {
		return "", fmt.Errorf("endereço de mint inválido: %w", err)
	}
	recipientPubKey, err := solana.PublicKeyFromBase58(recipient)
	if err != nil {
		return "", fmt.Errorf("chave pública do destinatário inválida: %w", err)
	}

	destATA, _, err := solana.FindAssociatedTokenAddress(recipientPubKey, mint)
	if err != nil {
		return "", fmt.Errorf("falha ao encontrar ATA do destinatário: %w", err)
	}

	mintInstruction := token.NewMintToInstruction(
		amount,
		mint,
		destATA,
		s.FeePayer.PublicKey(),
		nil,
	).Build()

	return s.sendInstructions([]solana.Instruction{mintInstruction})
}

// Transfer move tokens entre duas carteiras custodiais.
func (s *SolanaLedgerService) Transfer(mintAddress, from, to string, amount uint64) (string, error) {
	mint, err := solana.PublicKeyFromBase58(mintAddress)
	if err != nil {
		return "", fmt.Errorf("endereço de mint inválido: %w", err)
	}
	fromPubKey, err := solana.PublicKeyFromBase58(from)
	if err != nil {
		return "", fmt.Errorf("chave pública do remetente inválida: %w", err)
	}
	toPubKey, err := solana.PublicKeyFromBase58(to)
	if err != nil {
		return "", fmt.Errorf("chave pública do destinatário inválida: %w", err)
	}

	fromATA, _, err := solana.FindAssociatedTokenAddress(fromPubKey, mint)
	if err != nil {
		return "", fmt.Errorf("falha ao encontrar ATA do remetente: %w", err)
	}
	toATA, _, err := solana.FindAssociatedTokenAddress(toPubKey, mint)
	if err != nil {
		return "", fmt.Errorf("falha ao encontrar ATA do destinatário: %w", err)
	}

	transferInstruction := token.NewTransferInstruction(
		amount,
		fromATA,
		toATA,
		s.FeePayer.PublicKey(),
		nil,
	).Build()

	return s.sendInstructions([]solana.Instruction{transferInstruction})
}

// TransferFromEscrow move tokens de uma conta escrow derivada para uma
// carteira. O escrow é uma conta de token derivada por seed cuja autoridade é
// o FeePayer.
func (s *SolanaLedgerService) TransferFromEscrow(mintAddress, escrow, to string, amount uint64) (string, error) {
	mint, err := solana.PublicKeyFromBase58(mintAddress)
	if err != nil {
		return "", fmt.Errorf("endereço de mint inválido: %w", err)
	}
	escrowAccount, err := solana.PublicKeyFromBase58(escrow)
	if err != nil {
		return "", fmt.Errorf("endereço de escrow inválido: %w", err)
	}
	toPubKey, err := solana.PublicKeyFromBase58(to)
	if err != nil {
		return "", fmt.Errorf("chave pública do destinatário inválida: %w", err)
	}

	toATA, _, err := solana.FindAssociatedTokenAddress(toPubKey, mint)
	if err != nil {
		return "", fmt.Errorf("falha ao encontrar ATA do destinatário: %w", err)
	}

	transferInstruction := token.NewTransferInstruction(
		amount,
		escrowAccount,
		toATA,
		s.FeePayer.PublicKey(),
		nil,
	).Build()

	return s.sendInstructions([]solana.Instruction{transferInstruction})
}

// DeriveEscrowAddress deriva deterministicamente a conta escrow de um registro
// a partir da seed (qualquer chamador chega ao mesmo endereço).
func (s *SolanaLedgerService) DeriveEscrowAddress(seed string) (string, error) {
	// Seeds na Solana têm no máximo 32 bytes; UUIDs sem hífens cabem exatos.
	seed = strings.ReplaceAll(seed, "-", "")
	if len(seed) > 32 {
		seed = seed[:32]
	}

	derived, err := solana.CreateWithSeed(s.FeePayer.PublicKey(), seed, token.ProgramID)
	if err != nil {
		return "", fmt.Errorf("falha ao derivar endereço de escrow: %w", err)
	}
	return derived.String(), nil
}

// GetTokenBalance lê o saldo atual da carteira para um mint. Conta inexistente
// é tratada como saldo zero, não como erro.
func (s *SolanaLedgerService) GetTokenBalance(mintAddress, wallet string) (uint64, error) {
	mint, err := solana.PublicKeyFromBase58(mintAddress)
	if err != nil {
		return 0, fmt.Errorf("endereço de mint inválido: %w", err)
	}
	walletPubKey, err := solana.PublicKeyFromBase58(wallet)
	if err != nil {
		return 0, fmt.Errorf("chave pública da carteira inválida: %w", err)
	}

	ata, _, err := solana.FindAssociatedTokenAddress(walletPubKey, mint)
	if err != nil {
		return 0, fmt.Errorf("falha ao encontrar ATA da carteira: %w", err)
	}

	resp, err := s.RPCClient.GetTokenAccountBalance(context.Background(), ata, rpc.CommitmentConfirmed)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return 0, nil
		}
		return 0, fmt.Errorf("falha ao consultar saldo na Solana: %w", err)
	}

	balance, err := strconv.ParseUint(resp.Value.Amount, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("falha ao parsear saldo retornado: %w", err)
	}
	return balance, nil
}

// CurrentSlot retorna o slot corrente da rede.
func (s *SolanaLedgerService) CurrentSlot() (uint64, error) {
	slot, err := s.RPCClient.GetSlot(context.Background(), rpc.CommitmentFinalized)
	if err != nil {
		return 0, fmt.Errorf("falha ao consultar slot corrente: %w", err)
	}
	return slot, nil
}

// sendInstructions monta, assina com o FeePayer e envia uma transação.
func (s *SolanaLedgerService) sendInstructions(instructions []solana.Instruction) (string, error) {
	resp, err := s.RPCClient.GetRecentBlockhash(context.Background(), rpc.CommitmentFinalized)
	if err != nil {
		return "", fmt.Errorf("falha ao obter blockhash: %w", err)
	}

	tx, err := solana.NewTransaction(
		instructions,
		resp.Value.Blockhash,
		solana.TransactionPayer(s.FeePayer.PublicKey()),
	)
	if err != nil {
		return "", fmt.Errorf("falha ao criar transação: %w", err)
	}

	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(s.FeePayer.PublicKey()) {
			return &s.FeePayer
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("falha ao assinar transação pelo FeePayer: %w", err)
	}

	txID, err := s.RPCClient.SendTransactionWithOpts(context.Background(), tx, rpc.TransactionOpts{
		SkipPreflight:       false,
		PreflightCommitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		return "", fmt.Errorf("falha ao enviar transação: %w", err)
	}
	log.Printf("Transação enviada: %s", txID)

	return txID.String(), nil
}
