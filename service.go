// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package nftvm

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/luxfi/nftvm/nft"
	"github.com/luxfi/nftvm/txs"

	avajson "github.com/luxfi/nftvm/utils/json"
	txexecutor "github.com/luxfi/nftvm/txs/executor"
)

var errInvalidRequest = errors.New("invalid request")

// Service defines the API calls that can be made to the token ledger.
type Service struct {
	vm *VM
}

// NewService returns the API service backed by vm.
func NewService(vm *VM) *Service {
	return &Service{vm: vm}
}

// NFTOutput is a token record joined with the content blob it was
// minted against.
type NFTOutput struct {
	*nft.NFT
	Payload []byte `json:"payload"`
}

func (s *Service) nftOutput(record *nft.NFT) (*NFTOutput, error) {
	payload, err := s.vm.blobs.Get(record.BlobHash)
	if err != nil {
		return nil, fmt.Errorf("token %s: %w", record.TokenID, err)
	}
	return &NFTOutput{
		NFT:     record,
		Payload: payload,
	}, nil
}

type GetNFTArgs struct {
	TokenID string `json:"tokenID"`
}

type GetNFTReply struct {
	NFT *NFTOutput `json:"nft"`
}

// GetNFT returns the token record stored under tokenID.
func (s *Service) GetNFT(_ *http.Request, args *GetNFTArgs, reply *GetNFTReply) error {
	s.vm.log.Debug("API called",
		log.String("service", "nft"),
		log.String("method", "getNFT"),
		log.String("tokenID", args.TokenID),
	)

	tokenID, err := ids.FromString(args.TokenID)
	if err != nil {
		return fmt.Errorf("%w: invalid token ID", errInvalidRequest)
	}

	s.vm.lock.Lock()
	defer s.vm.lock.Unlock()

	record, err := s.vm.state.GetNFT(tokenID)
	if err != nil {
		return err
	}
	reply.NFT, err = s.nftOutput(record)
	return err
}

type GetNFTByExternalIDArgs struct {
	ExternalID avajson.Uint64 `json:"externalID"`
}

// GetNFTByExternalID resolves an off-chain listing id to the token that
// most recently claimed it.
func (s *Service) GetNFTByExternalID(_ *http.Request, args *GetNFTByExternalIDArgs, reply *GetNFTReply) error {
	s.vm.log.Debug("API called",
		log.String("service", "nft"),
		log.String("method", "getNFTByExternalID"),
		log.Uint64("externalID", uint64(args.ExternalID)),
	)

	s.vm.lock.Lock()
	defer s.vm.lock.Unlock()

	tokenID, err := s.vm.state.GetTokenIDByExternalID(uint64(args.ExternalID))
	if err != nil {
		return err
	}
	record, err := s.vm.state.GetNFT(tokenID)
	if err != nil {
		return err
	}
	reply.NFT, err = s.nftOutput(record)
	return err
}

type GetNFTsReply struct {
	NFTs []*NFTOutput `json:"nfts"`
}

// GetNFTs returns every token record on this chain.
func (s *Service) GetNFTs(_ *http.Request, _ *struct{}, reply *GetNFTsReply) error {
	s.vm.log.Debug("API called",
		log.String("service", "nft"),
		log.String("method", "getNFTs"),
	)

	s.vm.lock.Lock()
	defer s.vm.lock.Unlock()

	records, err := s.vm.state.GetAllNFTs()
	if err != nil {
		return err
	}
	reply.NFTs = make([]*NFTOutput, len(records))
	for i, record := range records {
		reply.NFTs[i], err = s.nftOutput(record)
		if err != nil {
			return err
		}
	}
	return nil
}

type GetOwnedTokenIDsArgs struct {
	Owner nft.Owner `json:"owner"`
}

type GetOwnedTokenIDsReply struct {
	TokenIDs []ids.ID `json:"tokenIDs"`
}

// GetOwnedTokenIDs returns the ids of the tokens held by owner.
func (s *Service) GetOwnedTokenIDs(_ *http.Request, args *GetOwnedTokenIDsArgs, reply *GetOwnedTokenIDsReply) error {
	s.vm.log.Debug("API called",
		log.String("service", "nft"),
		log.String("method", "getOwnedTokenIDs"),
		log.Stringer("owner", args.Owner),
	)

	if err := args.Owner.Verify(); err != nil {
		return fmt.Errorf("%w: %w", errInvalidRequest, err)
	}

	s.vm.lock.Lock()
	defer s.vm.lock.Unlock()

	tokenIDs, err := s.vm.state.GetOwnedTokenIDs(args.Owner)
	reply.TokenIDs = tokenIDs
	return err
}

type GetOwnedNFTsReply struct {
	NFTs []*NFTOutput `json:"nfts"`
}

// GetOwnedNFTs returns the full records of the tokens held by owner.
func (s *Service) GetOwnedNFTs(_ *http.Request, args *GetOwnedTokenIDsArgs, reply *GetOwnedNFTsReply) error {
	s.vm.log.Debug("API called",
		log.String("service", "nft"),
		log.String("method", "getOwnedNFTs"),
		log.Stringer("owner", args.Owner),
	)

	if err := args.Owner.Verify(); err != nil {
		return fmt.Errorf("%w: %w", errInvalidRequest, err)
	}

	s.vm.lock.Lock()
	defer s.vm.lock.Unlock()

	tokenIDs, err := s.vm.state.GetOwnedTokenIDs(args.Owner)
	if err != nil {
		return err
	}
	reply.NFTs = make([]*NFTOutput, len(tokenIDs))
	for i, tokenID := range tokenIDs {
		record, err := s.vm.state.GetNFT(tokenID)
		if err != nil {
			return err
		}
		reply.NFTs[i], err = s.nftOutput(record)
		if err != nil {
			return err
		}
	}
	return nil
}

type OwnerTokens struct {
	Owner    nft.Owner `json:"owner"`
	TokenIDs []ids.ID  `json:"tokenIDs"`
}

type GetOwnersReply struct {
	Owners []OwnerTokens `json:"owners"`
}

// GetOwners returns every owner on this chain with the ids of the
// tokens they hold.
func (s *Service) GetOwners(_ *http.Request, _ *struct{}, reply *GetOwnersReply) error {
	s.vm.log.Debug("API called",
		log.String("service", "nft"),
		log.String("method", "getOwners"),
	)

	s.vm.lock.Lock()
	defer s.vm.lock.Unlock()

	owned, err := s.vm.state.GetAllOwned()
	if err != nil {
		return err
	}
	reply.Owners = make([]OwnerTokens, len(owned))
	for i, entry := range owned {
		reply.Owners[i] = OwnerTokens{
			Owner:    entry.Owner,
			TokenIDs: entry.TokenIDs,
		}
	}
	return nil
}

type GetNumMintedReply struct {
	NumMinted avajson.Uint64 `json:"numMinted"`
}

// GetNumMinted returns how many tokens this chain has minted.
func (s *Service) GetNumMinted(_ *http.Request, _ *struct{}, reply *GetNumMintedReply) error {
	s.vm.log.Debug("API called",
		log.String("service", "nft"),
		log.String("method", "getNumMinted"),
	)

	s.vm.lock.Lock()
	defer s.vm.lock.Unlock()

	numMinted, err := s.vm.state.GetNumMinted()
	reply.NumMinted = avajson.Uint64(numMinted)
	return err
}

type PutBlobArgs struct {
	Payload []byte `json:"payload"`
}

type PutBlobReply struct {
	BlobHash ids.ID `json:"blobHash"`
}

// PutBlob stores a content blob and returns its hash, which mints can
// then reference.
func (s *Service) PutBlob(_ *http.Request, args *PutBlobArgs, reply *PutBlobReply) error {
	s.vm.log.Debug("API called",
		log.String("service", "nft"),
		log.String("method", "putBlob"),
		log.Int("payloadBytes", len(args.Payload)),
	)

	s.vm.lock.Lock()
	defer s.vm.lock.Unlock()

	blobHash, err := s.vm.blobs.Put(args.Payload)
	reply.BlobHash = blobHash
	return err
}

type GetBlobArgs struct {
	BlobHash string `json:"blobHash"`
}

type GetBlobReply struct {
	Payload []byte `json:"payload"`
}

// GetBlob returns the content blob stored under blobHash.
func (s *Service) GetBlob(_ *http.Request, args *GetBlobArgs, reply *GetBlobReply) error {
	s.vm.log.Debug("API called",
		log.String("service", "nft"),
		log.String("method", "getBlob"),
		log.String("blobHash", args.BlobHash),
	)

	blobHash, err := ids.FromString(args.BlobHash)
	if err != nil {
		return fmt.Errorf("%w: invalid blob hash", errInvalidRequest)
	}

	s.vm.lock.Lock()
	defer s.vm.lock.Unlock()

	payload, err := s.vm.blobs.Get(blobHash)
	reply.Payload = payload
	return err
}

type MintArgs struct {
	Signer      string         `json:"signer"`
	Minter      nft.Owner      `json:"minter"`
	Name        string         `json:"name"`
	BlobHash    string         `json:"blobHash"`
	AssetSymbol string         `json:"assetSymbol"`
	Price       string         `json:"price"`
	ExternalID  avajson.Uint64 `json:"externalID"`
	ChainMinter string         `json:"chainMinter"`
	ChainOwner  string         `json:"chainOwner"`
	Description string         `json:"description"`
}

type MintReply struct {
	TokenID ids.ID `json:"tokenID"`
}

// Mint creates a token against a stored blob and puts it on sale under
// the declared minter.
func (s *Service) Mint(_ *http.Request, args *MintArgs, reply *MintReply) error {
	s.vm.log.Debug("API called",
		log.String("service", "nft"),
		log.String("method", "mint"),
		log.String("name", args.Name),
	)

	signer, err := ids.ShortFromString(args.Signer)
	if err != nil {
		return fmt.Errorf("%w: invalid signer address", errInvalidRequest)
	}
	blobHash, err := ids.FromString(args.BlobHash)
	if err != nil {
		return fmt.Errorf("%w: invalid blob hash", errInvalidRequest)
	}

	executor, err := s.vm.issueTx(txexecutor.SignedBy(signer), &txs.MintTx{
		Minter:      args.Minter,
		Name:        args.Name,
		BlobHash:    blobHash,
		AssetSymbol: args.AssetSymbol,
		Price:       args.Price,
		ExternalID:  uint64(args.ExternalID),
		ChainMinter: args.ChainMinter,
		ChainOwner:  args.ChainOwner,
		Description: args.Description,
	})
	if err != nil {
		return err
	}
	reply.TokenID = executor.MintedID
	return nil
}

type TransferArgs struct {
	Signer        string      `json:"signer"`
	SourceOwner   nft.Owner   `json:"sourceOwner"`
	TokenID       string      `json:"tokenID"`
	TargetAccount nft.Account `json:"targetAccount"`
	ChainOwner    string      `json:"chainOwner"`
	BuyFromToken  string      `json:"buyFromToken"`
	ToToken       string      `json:"toToken"`
	Amount        string      `json:"amount"`
}

type IssueTxReply struct {
	Success bool `json:"success"`
}

// Transfer moves a token to the target account, shipping it in a
// tracked message when the target lives on another chain.
func (s *Service) Transfer(_ *http.Request, args *TransferArgs, reply *IssueTxReply) error {
	s.vm.log.Debug("API called",
		log.String("service", "nft"),
		log.String("method", "transfer"),
		log.String("tokenID", args.TokenID),
	)

	signer, err := ids.ShortFromString(args.Signer)
	if err != nil {
		return fmt.Errorf("%w: invalid signer address", errInvalidRequest)
	}
	tokenID, err := ids.FromString(args.TokenID)
	if err != nil {
		return fmt.Errorf("%w: invalid token ID", errInvalidRequest)
	}

	if err := s.vm.ExecuteTx(signer, &txs.TransferTx{
		SourceOwner:   args.SourceOwner,
		TokenID:       tokenID,
		TargetAccount: args.TargetAccount,
		ChainOwner:    args.ChainOwner,
		BuyFromToken:  args.BuyFromToken,
		ToToken:       args.ToToken,
		Amount:        args.Amount,
	}); err != nil {
		return err
	}
	reply.Success = true
	return nil
}

type ClaimArgs struct {
	Signer        string      `json:"signer"`
	SourceAccount nft.Account `json:"sourceAccount"`
	TokenID       string      `json:"tokenID"`
	TargetAccount nft.Account `json:"targetAccount"`
}

// Claim pulls a token held on the source chain over to the target
// account.
func (s *Service) Claim(_ *http.Request, args *ClaimArgs, reply *IssueTxReply) error {
	s.vm.log.Debug("API called",
		log.String("service", "nft"),
		log.String("method", "claim"),
		log.String("tokenID", args.TokenID),
	)

	signer, err := ids.ShortFromString(args.Signer)
	if err != nil {
		return fmt.Errorf("%w: invalid signer address", errInvalidRequest)
	}
	tokenID, err := ids.FromString(args.TokenID)
	if err != nil {
		return fmt.Errorf("%w: invalid token ID", errInvalidRequest)
	}

	if err := s.vm.ExecuteTx(signer, &txs.ClaimTx{
		SourceAccount: args.SourceAccount,
		TokenID:       tokenID,
		TargetAccount: args.TargetAccount,
	}); err != nil {
		return err
	}
	reply.Success = true
	return nil
}

type ListForSaleArgs struct {
	Signer     string `json:"signer"`
	TokenID    string `json:"tokenID"`
	ChainOwner string `json:"chainOwner"`
}

// ListForSale puts a token owned by the signer back on sale.
func (s *Service) ListForSale(_ *http.Request, args *ListForSaleArgs, reply *IssueTxReply) error {
	s.vm.log.Debug("API called",
		log.String("service", "nft"),
		log.String("method", "listForSale"),
		log.String("tokenID", args.TokenID),
	)

	signer, err := ids.ShortFromString(args.Signer)
	if err != nil {
		return fmt.Errorf("%w: invalid signer address", errInvalidRequest)
	}
	tokenID, err := ids.FromString(args.TokenID)
	if err != nil {
		return fmt.Errorf("%w: invalid token ID", errInvalidRequest)
	}

	if err := s.vm.ExecuteTx(signer, &txs.ListForSaleTx{
		TokenID:    tokenID,
		ChainOwner: args.ChainOwner,
	}); err != nil {
		return err
	}
	reply.Success = true
	return nil
}
