package auth

import (
	"infinite-experiment/consortium/internal/constants"
	"infinite-experiment/consortium/internal/governance"
)

// CallerClaims identifies who is calling the service. Every governance
// mutation is attributed to Address.
type CallerClaims interface {
	Address() governance.Address
	Source() constants.RequestSource
}

type JWTClaims struct {
	CallerAddress governance.Address
	TokenID       string
}

func (c *JWTClaims) Address() governance.Address     { return c.CallerAddress }
func (c *JWTClaims) Source() constants.RequestSource { return constants.RequestSourceJWT }

type APIKeyClaims struct {
	CallerAddress governance.Address
}

func (c *APIKeyClaims) Address() governance.Address     { return c.CallerAddress }
func (c *APIKeyClaims) Source() constants.RequestSource { return constants.RequestSourceAPIKey }
