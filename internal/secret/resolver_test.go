package secret

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

type fakeSSMClient struct {
	params map[string]string
}

func (f *fakeSSMClient) GetParameter(_ context.Context, input *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	val, ok := f.params[*input.Name]
	if !ok {
		return nil, fmt.Errorf("parameter not found: %s", *input.Name)
	}
	return &ssm.GetParameterOutput{
		Parameter: &ssmtypes.Parameter{
			Name:  input.Name,
			Value: aws.String(val),
		},
	}, nil
}

func TestSSMResolver_GetSecret_Success(t *testing.T) {
	client := &fakeSSMClient{
		params: map[string]string{
			"/driverelay/jwt-secret": "super-secret-value",
		},
	}
	resolver := NewSSMResolver(client)

	val, err := resolver.GetSecret(context.Background(), "/driverelay/jwt-secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val != "super-secret-value" {
		t.Fatalf("expected %q, got %q", "super-secret-value", val)
	}
}

func TestSSMResolver_GetSecret_NotFound(t *testing.T) {
	client := &fakeSSMClient{
		params: map[string]string{},
	}
	resolver := NewSSMResolver(client)

	_, err := resolver.GetSecret(context.Background(), "/driverelay/nonexistent")
	if err == nil {
		t.Fatal("expected error for missing parameter, got nil")
	}
}

func TestEnvResolver_GetSecret_Success(t *testing.T) {
	os.Setenv("ADMIN_PASSWORD", "env-secret-value")
	defer os.Unsetenv("ADMIN_PASSWORD")

	resolver := NewEnvResolver()

	val, err := resolver.GetSecret(context.Background(), "/driverelay/admin-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val != "env-secret-value" {
		t.Fatalf("expected %q, got %q", "env-secret-value", val)
	}
}

func TestEnvResolver_GetSecret_NotSet(t *testing.T) {
	os.Unsetenv("NONEXISTENT_SECRET")
	resolver := NewEnvResolver()

	_, err := resolver.GetSecret(context.Background(), "/driverelay/nonexistent-secret")
	if err == nil {
		t.Fatal("expected error for unset environment variable, got nil")
	}
}

func TestParamNameToEnvVar(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/driverelay/jwt-secret", "JWT_SECRET"},
		{"/driverelay/admin-password", "ADMIN_PASSWORD"},
		{"/driverelay/google-client-secret", "GOOGLE_CLIENT_SECRET"},
		{"plain-name", "PLAIN_NAME"},
	}
	for _, tt := range tests {
		if got := paramNameToEnvVar(tt.in); got != tt.want {
			t.Errorf("paramNameToEnvVar(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
