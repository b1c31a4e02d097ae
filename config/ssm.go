package config

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ssmGetParametersByPathAPI is the slice of the SSM client used here.
type ssmGetParametersByPathAPI interface {
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

var newSSMClient = func(ctx context.Context) (ssmGetParametersByPathAPI, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return ssm.NewFromConfig(cfg), nil
}

func fetchSSMParameters(ctx context.Context, parameterPath string) (map[string]string, error) {
	client, err := newSSMClient(ctx)
	if err != nil {
		return nil, err
	}
	return readParameters(ctx, client, parameterPath)
}

// readParameters walks every page under parameterPath. A parameter named
// /portfolio/prod/jwt_secret becomes the key JWT_SECRET.
func readParameters(ctx context.Context, client ssmGetParametersByPathAPI, parameterPath string) (map[string]string, error) {
	params := make(map[string]string)
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(parameterPath),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("read ssm parameters under %s: %w", parameterPath, err)
		}
		for _, p := range page.Parameters {
			name := strings.ToUpper(path.Base(aws.ToString(p.Name)))
			params[name] = aws.ToString(p.Value)
		}
	}
	return params, nil
}
