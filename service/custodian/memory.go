package custodian

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"nftlend/core"
)

var (
	// ErrTokenNotFound token never minted
	ErrTokenNotFound = errors.New("token not found")
	// ErrNotOwner transfer from an account not owning the token
	ErrNotOwner = errors.New("not token owner")
	// ErrNotInCustody token is not held by the vault
	ErrNotInCustody = errors.New("token not in custody")
)

// Registry in memory nft registry, the vault account holds the deposited tokens
type Registry struct {
	mu     sync.Mutex
	vault  string
	owners map[string]map[string]string
}

// NewRegistry new in memory registry
func NewRegistry(vault string) *Registry {
	return &Registry{
		vault:  core.NormalizeAddress(vault),
		owners: map[string]map[string]string{},
	}
}

// Mint assign the token to owner
func (r *Registry) Mint(project, tokenID, owner string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	project = core.NormalizeAddress(project)
	tokens, ok := r.owners[project]
	if !ok {
		tokens = map[string]string{}
		r.owners[project] = tokens
	}

	tokens[tokenID] = core.NormalizeAddress(owner)
}

// Vault account holding the deposited tokens
func (r *Registry) Vault() string {
	return r.vault
}

func (r *Registry) TransferIn(ctx context.Context, project, tokenID, from string) error {
	return r.transfer(project, tokenID, from, r.vault)
}

func (r *Registry) TransferOut(ctx context.Context, project, tokenID, to string) error {
	if err := r.transfer(project, tokenID, r.vault, to); err != nil {
		if errors.Is(err, ErrNotOwner) {
			return ErrNotInCustody
		}

		return err
	}

	return nil
}

func (r *Registry) transfer(project, tokenID, from, to string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tokens := r.owners[core.NormalizeAddress(project)]
	owner, ok := tokens[tokenID]
	if !ok {
		return fmt.Errorf("%w: %s #%s", ErrTokenNotFound, project, tokenID)
	}

	if owner != core.NormalizeAddress(from) {
		return fmt.Errorf("%w: %s #%s", ErrNotOwner, project, tokenID)
	}

	tokens[tokenID] = core.NormalizeAddress(to)
	return nil
}

func (r *Registry) OwnerOf(ctx context.Context, project, tokenID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, ok := r.owners[core.NormalizeAddress(project)][tokenID]
	if !ok {
		return "", ErrTokenNotFound
	}

	return owner, nil
}

func (r *Registry) TokensOf(ctx context.Context, project, owner string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner = core.NormalizeAddress(owner)
	var ids []string
	for id, o := range r.owners[core.NormalizeAddress(project)] {
		if o == owner {
			ids = append(ids, id)
		}
	}

	sort.Strings(ids)
	return ids, nil
}
