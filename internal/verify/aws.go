package verify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
)

type stsAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

type awsVerifier struct {
	newClient func(ctx context.Context) (stsAPI, error)
	now       func() time.Time
	env       func(string) string
}

var awsKeyIDPattern = regexp.MustCompile(`^AKIA[0-9A-Z]{16}$`)

func newAWSVerifier() Verifier {
	return awsVerifier{
		newClient: defaultSTSClient,
		now:       func() time.Time { return time.Now().UTC() },
		env:       os.Getenv,
	}
}

func (awsVerifier) Name() string { return "aws" }

func (awsVerifier) CanVerify(secret string) bool {
	return normalizeAWSKeyID(secret) != ""
}

func defaultSTSClient(ctx context.Context) (stsAPI, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(defaultAWSRegion()))
	if err != nil {
		return nil, err
	}
	return sts.NewFromConfig(cfg), nil
}

func defaultAWSRegion() string {
	if v := os.Getenv("AWS_REGION"); strings.TrimSpace(v) != "" {
		return v
	}
	if v := os.Getenv("AWS_DEFAULT_REGION"); strings.TrimSpace(v) != "" {
		return v
	}
	return "us-east-1"
}

// Verify calls STS GetCallerIdentity with the ambient AWS credentials. The
// secret must match AWS_ACCESS_KEY_ID so the check verifies the key that
// was actually found, not whatever the environment happens to hold.
func (v awsVerifier) Verify(ctx context.Context, secret string) (*Result, error) {
	if strings.TrimSpace(v.env("AWS_ACCESS_KEY_ID")) == "" || strings.TrimSpace(v.env("AWS_SECRET_ACCESS_KEY")) == "" {
		return nil, errors.New("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set to verify aws keys")
	}

	providedKey := normalizeAWSKeyID(secret)
	envKey := normalizeAWSKeyID(v.env("AWS_ACCESS_KEY_ID"))
	if providedKey != "" && envKey != "" && providedKey != envKey {
		return nil, fmt.Errorf("provided key does not match current AWS_ACCESS_KEY_ID")
	}

	client, err := v.newClient(ctx)
	if err != nil {
		return nil, err
	}

	out, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		if isAWSAuthFailure(err) {
			return &Result{
				Active:    false,
				Method:    "aws-sts-get-caller-identity",
				Details:   map[string]string{"reason": "authentication-failed"},
				CheckedAt: v.now(),
			}, nil
		}
		return nil, err
	}

	return &Result{
		Active: true,
		Method: "aws-sts-get-caller-identity",
		Details: map[string]string{
			"account": aws.ToString(out.Account),
			"arn":     aws.ToString(out.Arn),
			"user_id": aws.ToString(out.UserId),
		},
		CheckedAt: v.now(),
	}, nil
}

func normalizeAWSKeyID(v string) string {
	v = strings.TrimSpace(v)
	v = strings.Trim(v, `"'`)
	if awsKeyIDPattern.MatchString(v) {
		return v
	}
	return ""
}

func isAWSAuthFailure(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "InvalidClientTokenId", "SignatureDoesNotMatch", "AuthFailure", "UnrecognizedClientException", "ExpiredToken", "InvalidSignatureException":
		return true
	default:
		return false
	}
}
