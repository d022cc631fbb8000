package custodian

import (
	"context"
	"fmt"
	"net/url"

	"nftlend/core"
	"nftlend/pkg/resthttp"
)

type remote struct {
	endpoint string
}

// NewRemote custodian backed by the registry api at cfg.EndPoint
func NewRemote(cfg core.Custodian) core.ICustodian {
	return &remote{
		endpoint: cfg.EndPoint,
	}
}

func (s *remote) tokenURL(project, tokenID string) string {
	return fmt.Sprintf("%s/api/collections/%s/tokens/%s", s.endpoint, url.PathEscape(project), url.PathEscape(tokenID))
}

func (s *remote) TransferIn(ctx context.Context, project, tokenID, from string) error {
	body := map[string]string{"from": from}
	_, err := resthttp.Execute(resthttp.Request(ctx), "POST", s.tokenURL(project, tokenID)+"/transfer-in", body, nil)
	return err
}

func (s *remote) TransferOut(ctx context.Context, project, tokenID, to string) error {
	body := map[string]string{"to": to}
	_, err := resthttp.Execute(resthttp.Request(ctx), "POST", s.tokenURL(project, tokenID)+"/transfer-out", body, nil)
	return err
}

func (s *remote) OwnerOf(ctx context.Context, project, tokenID string) (string, error) {
	var resp struct {
		Owner string `json:"owner"`
	}

	if _, err := resthttp.Execute(resthttp.Request(ctx), "GET", s.tokenURL(project, tokenID), nil, &resp); err != nil {
		return "", err
	}

	return resp.Owner, nil
}

func (s *remote) TokensOf(ctx context.Context, project, owner string) ([]string, error) {
	u := fmt.Sprintf("%s/api/collections/%s/owners/%s/tokens", s.endpoint, url.PathEscape(project), url.PathEscape(owner))

	var resp struct {
		Tokens []string `json:"tokens"`
	}

	if _, err := resthttp.Execute(resthttp.Request(ctx), "GET", u, nil, &resp); err != nil {
		return nil, err
	}

	return resp.Tokens, nil
}
