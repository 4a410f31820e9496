package iam

import (
	"github.com/quatton/portfolio/pkg/pauth"
	"github.com/quatton/portfolio/pkg/plog"
)

type IAMService struct {
	verifier *pauth.Verifier
	logger   *plog.Logger
}

func NewIAMService(verifier *pauth.Verifier, logger *plog.Logger) *IAMService {
	return &IAMService{verifier: verifier, logger: logger}
}
