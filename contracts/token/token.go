// Package token provides an in-memory fungible token with ERC-20 transfer
// semantics: balances, allowances, and soft failure. Transfers go through a
// Session bound to a sender address, the way a generated contract binding
// pre-sets its transact options. Tests and the redemption simulator use it
// in place of a real token contract.
package token

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// Token tracks balances and allowances for one fungible token.
type Token struct {
	address     common.Address
	balances    map[common.Address]*big.Int
	allowances  map[common.Address]map[common.Address]*big.Int
	totalSupply *big.Int
}

// New creates an empty token identified by the given address.
func New(address common.Address) *Token {
	return &Token{
		address:     address,
		balances:    make(map[common.Address]*big.Int),
		allowances:  make(map[common.Address]map[common.Address]*big.Int),
		totalSupply: new(big.Int),
	}
}

// Address returns the token's identity.
func (t *Token) Address() common.Address {
	return t.address
}

// Mint credits freshly created units to an account.
func (t *Token) Mint(to common.Address, amount *big.Int) error {
	if err := validAmount(amount); err != nil {
		return err
	}
	t.credit(to, amount)
	t.totalSupply.Add(t.totalSupply, amount)
	return nil
}

// BalanceOf returns an account's balance.
func (t *Token) BalanceOf(holder common.Address) *big.Int {
	if balance, ok := t.balances[holder]; ok {
		return new(big.Int).Set(balance)
	}
	return new(big.Int)
}

// TotalSupply returns the number of units ever minted.
func (t *Token) TotalSupply() *big.Int {
	return new(big.Int).Set(t.totalSupply)
}

// Allowance returns how much spender may still move out of owner's balance.
func (t *Token) Allowance(owner, spender common.Address) *big.Int {
	if granted, ok := t.allowances[owner]; ok {
		if remaining, ok := granted[spender]; ok {
			return new(big.Int).Set(remaining)
		}
	}
	return new(big.Int)
}

// Bind returns a session that executes transfers with the given sender.
func (t *Token) Bind(sender common.Address) *Session {
	return &Session{token: t, sender: sender}
}

func (t *Token) credit(to common.Address, amount *big.Int) {
	balance, ok := t.balances[to]
	if !ok {
		balance = new(big.Int)
		t.balances[to] = balance
	}
	balance.Add(balance, amount)
}

// transfer moves amount between accounts, reporting soft failure when the
// source balance is insufficient.
func (t *Token) transfer(from, to common.Address, amount *big.Int) bool {
	balance, ok := t.balances[from]
	if !ok {
		balance = new(big.Int)
	}
	if balance.Cmp(amount) < 0 {
		return false
	}
	balance.Sub(balance, amount)
	t.credit(to, amount)
	return true
}

// Session is a token handle bound to a sender address.
type Session struct {
	token  *Token
	sender common.Address
}

// Address returns the underlying token's identity.
func (s *Session) Address() common.Address {
	return s.token.address
}

// Approve grants spender the right to move amount out of the bound sender's
// balance.
func (s *Session) Approve(spender common.Address, amount *big.Int) error {
	if err := validAmount(amount); err != nil {
		return err
	}
	granted, ok := s.token.allowances[s.sender]
	if !ok {
		granted = make(map[common.Address]*big.Int)
		s.token.allowances[s.sender] = granted
	}
	granted[spender] = new(big.Int).Set(amount)
	return nil
}

// Transfer moves amount from the bound sender to another account. It returns
// false, not an error, when the sender's balance is insufficient.
func (s *Session) Transfer(to common.Address, amount *big.Int) (bool, error) {
	if err := validAmount(amount); err != nil {
		return false, err
	}
	return s.token.transfer(s.sender, to, amount), nil
}

// TransferFrom moves amount out of from's balance, spending the allowance
// granted to the bound sender. It returns false when the allowance or the
// balance is insufficient.
func (s *Session) TransferFrom(from, to common.Address, amount *big.Int) (bool, error) {
	if err := validAmount(amount); err != nil {
		return false, err
	}
	granted, ok := s.token.allowances[from]
	if !ok {
		return false, nil
	}
	remaining, ok := granted[s.sender]
	if !ok || remaining.Cmp(amount) < 0 {
		return false, nil
	}
	if !s.token.transfer(from, to, amount) {
		return false, nil
	}
	remaining.Sub(remaining, amount)
	return true, nil
}

func validAmount(amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return errors.New("amount must be a non-negative integer")
	}
	return nil
}
