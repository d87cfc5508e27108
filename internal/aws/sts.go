package aws

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// identityProbeTimeout bounds the credential check. Data queries use SDK defaults.
const identityProbeTimeout = 5 * time.Second

// STSAPI is the minimal interface for the identity probe.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, input *sts.GetCallerIdentityInput, opts ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// IdentityProber verifies credentials and resolves the account behind them.
type IdentityProber struct {
	client  STSAPI
	region  string
	timeout time.Duration
}

// NewIdentityProber creates a prober for the given STS client and resolved region.
func NewIdentityProber(client STSAPI, region string) *IdentityProber {
	return &IdentityProber{client: client, region: region, timeout: identityProbeTimeout}
}

// Probe calls GetCallerIdentity under a short deadline.
func (p *IdentityProber) Probe(ctx context.Context) (Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	out, err := p.client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return Identity{}, fmt.Errorf("get caller identity: %w", err)
	}

	id := Identity{
		Account: awssdk.ToString(out.Account),
		ARN:     awssdk.ToString(out.Arn),
		Region:  p.region,
	}
	slog.Debug("Resolved caller identity", "account", id.Account, "arn", id.ARN, "region", id.Region)
	return id, nil
}
