package blockchain_listener

import (
	"context"
	"encoding/json"
	"log"
	"time"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"github.com/google/uuid"

	"github.com/ferreirogomes/chainequity/models"
	"github.com/ferreirogomes/chainequity/storage"
)

// BlockchainListener escuta por eventos na Solana para manter o DB sincronizado.
// Como todas as transações do engine são assinadas pelo Fee Payer, subscrever às
// assinaturas dele cobre todo o fluxo custodial. Instruções SPL Token observadas
// são registradas como eventos de sincronização, que servem de trilha para
// reconciliar o supply e os saldos internos com o ledger.
type BlockchainListener struct {
	RPCClient  *rpc.Client
	WSClient   *ws.Client
	DB         *storage.DB
	FeePayerPK solana.PrivateKey
}

// NewBlockchainListener cria uma nova instância do listener.
func NewBlockchainListener(rpcEndpoint, wsEndpoint string, db *storage.DB, feePayerKeyBase58 string) (*BlockchainListener, error) {
	wsClient, err := ws.Connect(context.Background(), wsEndpoint)
	if err != nil {
		return nil, err
	}

	feePayer, err := solana.PrivateKeyFromBase58(feePayerKeyBase58)
	if err != nil {
		return nil, err
	}

	return &BlockchainListener{
		RPCClient:  rpc.New(rpcEndpoint),
		WSClient:   wsClient,
		DB:         db,
		FeePayerPK: feePayer,
	}, nil
}

// StartListening inicia a escuta por eventos.
func (l *BlockchainListener) StartListening() {
	log.Println("Iniciando listener da blockchain...")

	sub, err := l.WSClient.LogsSubscribeMentions(
		l.FeePayerPK.PublicKey(),
		rpc.CommitmentFinalized,
	)
	if err != nil {
		log.Printf("Falha ao subscrever aos logs do Fee Payer: %v", err)
		return
	}
	defer sub.Unsubscribe()

	for {
		got, err := sub.Recv(context.Background())
		if err != nil {
			log.Printf("Erro ao receber notificação de log: %v", err)
			time.Sleep(5 * time.Second)
			continue
		}

		if got.Value.Err == nil {
			log.Printf("Transação confirmada (Signature: %s). Processando...", got.Value.Signature)
			l.ProcessTransaction(got.Value.Signature)
		} else {
			log.Printf("Transação %s falhou: %v", got.Value.Signature, got.Value.Err)
		}
	}
}

// ProcessTransaction busca os detalhes de uma transação e registra eventos de
// sincronização para as instruções SPL Token encontradas.
func (l *BlockchainListener) ProcessTransaction(signature solana.Signature) {
	txResp, err := l.RPCClient.GetTransaction(context.Background(), signature, &rpc.GetTransactionOpts{
		Commitment: rpc.CommitmentFinalized,
		Encoding:   solana.EncodingBase64,
	})
	if err != nil {
		log.Printf("Falha ao obter detalhes da transação %s: %v", signature.String(), err)
		return
	}
	if txResp == nil || txResp.Transaction == nil {
		log.Printf("Detalhes da transação %s vazios.", signature.String())
		return
	}

	tx, err := txResp.Transaction.GetTransaction()
	if err != nil {
		log.Printf("Falha ao decodificar transação %s: %v", signature.String(), err)
		return
	}

	for _, ix := range tx.Message.Instructions {
		l.processInstruction(signature, tx, ix)
	}
}

// processInstruction decodifica uma instrução SPL Token e despacha para o
// handler do tipo correspondente. Instruções de outros programas são ignoradas.
func (l *BlockchainListener) processInstruction(signature solana.Signature, tx *solana.Transaction, ix solana.CompiledInstruction) {
	programKey, err := tx.Message.Program(ix.ProgramIDIndex)
	if err != nil || !programKey.Equals(token.ProgramID) {
		return
	}

	accounts, err := ix.ResolveInstructionAccounts(&tx.Message)
	if err != nil {
		log.Printf("Falha ao resolver contas da instrução na transação %s: %v", signature.String(), err)
		return
	}

	decoded, err := token.DecodeInstruction(accounts, ix.Data)
	if err != nil {
		// Instrução SPL Token que não sabemos decodificar; segue o jogo.
		return
	}

	switch inst := decoded.Impl.(type) {
	case *token.MintTo:
		l.handleMintTo(signature, inst)
	case *token.Transfer:
		l.handleTransfer(signature, inst)
	}
}

// handleMintTo registra um evento de sincronização para um cunho observado.
func (l *BlockchainListener) handleMintTo(signature solana.Signature, inst *token.MintTo) {
	if inst.Amount == nil {
		return
	}
	mint := inst.GetMintAccount().PublicKey.String()
	destination := inst.GetDestinationAccount().PublicKey.String()

	equity, found, err := l.DB.GetEquityByMintAddress(mint)
	if err != nil {
		log.Printf("Erro ao buscar equity pelo mint %s: %v", mint, err)
		return
	}
	if !found {
		// Mint de outro sistema compartilhando o mesmo Fee Payer.
		return
	}

	l.saveSyncEvent(equity.ID, models.EventLedgerMintObserved, map[string]interface{}{
		"signature":   signature.String(),
		"mint":        mint,
		"destination": destination,
		"amount":      *inst.Amount,
	})
	log.Printf("Cunho on-chain observado: equity %s, conta %s, quantidade %d (tx %s)",
		equity.Symbol, destination, *inst.Amount, signature.String())
}

// handleTransfer registra um evento de sincronização para uma transferência
// observada. O mint é resolvido pela conta de origem, já que a instrução
// 'transfer' não o carrega.
func (l *BlockchainListener) handleTransfer(signature solana.Signature, inst *token.Transfer) {
	if inst.Amount == nil {
		return
	}
	source := inst.GetSourceAccount().PublicKey
	destination := inst.GetDestinationAccount().PublicKey.String()

	accountInfo, err := l.RPCClient.GetAccountInfo(context.Background(), source)
	if err != nil {
		log.Printf("Falha ao obter info da conta de origem %s: %v", source.String(), err)
		return
	}
	var sourceTokenAccount token.Account
	if err := bin.NewBinDecoder(accountInfo.Value.Data.GetBinary()).Decode(&sourceTokenAccount); err != nil {
		log.Printf("Falha ao decodificar conta de origem %s: %v", source.String(), err)
		return
	}
	mintAddress := sourceTokenAccount.Mint.String()

	equity, found, err := l.DB.GetEquityByMintAddress(mintAddress)
	if err != nil {
		log.Printf("Erro ao buscar equity pelo mint %s: %v", mintAddress, err)
		return
	}
	if !found {
		return
	}

	l.saveSyncEvent(equity.ID, models.EventLedgerTransferObserved, map[string]interface{}{
		"signature":   signature.String(),
		"mint":        mintAddress,
		"source":      source.String(),
		"destination": destination,
		"amount":      *inst.Amount,
	})
	log.Printf("Transferência on-chain observada: equity %s, %s -> %s, quantidade %d (tx %s)",
		equity.Symbol, source.String(), destination, *inst.Amount, signature.String())
}

// saveSyncEvent persiste um evento de sincronização. Falhas são apenas logadas:
// o listener é melhor-esforço e a próxima transação não deve ser bloqueada.
func (l *BlockchainListener) saveSyncEvent(equityID, kind string, payload map[string]interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Falha ao serializar evento de sincronização %s: %v", kind, err)
		return
	}
	event := models.EquityEvent{
		ID:        uuid.New().String(),
		EquityID:  equityID,
		Kind:      kind,
		Payload:   data,
		CreatedAt: time.Now(),
	}
	if err := l.DB.SaveEvent(event); err != nil {
		log.Printf("Falha ao salvar evento de sincronização %s para equity %s: %v", kind, equityID, err)
	}
}
