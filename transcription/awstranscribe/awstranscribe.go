// Package awstranscribe implements transcription.Provider using Amazon
// Transcribe batch jobs. The finished transcript document is written by
// Transcribe to S3 and fetched from there.
package awstranscribe

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/transcribe"
	trtypes "github.com/aws/aws-sdk-go-v2/service/transcribe/types"

	"github.com/kbukum/chapterkit/errors"
	"github.com/kbukum/chapterkit/provider"
	"github.com/kbukum/chapterkit/transcription"
)

// ProviderName is the registered name for the Amazon Transcribe provider.
const ProviderName = "awstranscribe"

const (
	defaultLanguage    = "en-US"
	defaultMediaFormat = "mp4"
)

func init() {
	transcription.RegisterFactory(ProviderName, Factory())
}

// Config holds configuration for the Amazon Transcribe backend.
type Config struct {
	// Region is the AWS region to run jobs in.
	Region string `json:"region" yaml:"region"`
	// AccessKey and SecretKey are optional static credentials; when empty
	// the default AWS credential chain is used.
	AccessKey string `json:"access_key,omitempty" yaml:"access_key"`
	SecretKey string `json:"secret_key,omitempty" yaml:"secret_key"`
}

// Provider implements transcription.Provider using Amazon Transcribe.
type Provider struct {
	client   *transcribe.Client
	s3Client *s3.Client
}

// NewProvider creates a new Amazon Transcribe backend.
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("awstranscribe: load aws config: %w", err)
	}

	return &Provider{
		client:   transcribe.NewFromConfig(awsCfg),
		s3Client: s3.NewFromConfig(awsCfg),
	}, nil
}

// Factory returns a provider.Factory that creates Transcribe Provider
// instances from a generic config map.
func Factory() provider.Factory[transcription.Provider] {
	return func(cfg map[string]any) (transcription.Provider, error) {
		tc := Config{}
		if v, ok := cfg["region"].(string); ok {
			tc.Region = v
		}
		if v, ok := cfg["access_key"].(string); ok {
			tc.AccessKey = v
		}
		if v, ok := cfg["secret_key"].(string); ok {
			tc.SecretKey = v
		}
		return NewProvider(context.Background(), tc)
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether the client is configured. Transcribe has no
// cheap unauthenticated health endpoint.
func (p *Provider) IsAvailable(_ context.Context) bool { return p.client != nil }

// StartJob submits the media object for transcription. The object key is
// expected as "jobID/filename.ext"; the job is named after the jobID and the
// output document is written next to the input as
// "jobID/filename_transcript.json".
func (p *Provider) StartJob(ctx context.Context, req transcription.JobRequest) (string, error) {
	jobID, filename, err := splitObjectKey(req.ObjectKey)
	if err != nil {
		return "", err
	}

	language := req.Language
	if language == "" {
		language = defaultLanguage
	}
	format := req.MediaFormat
	if format == "" {
		format = defaultMediaFormat
	}

	out, err := p.client.StartTranscriptionJob(ctx, &transcribe.StartTranscriptionJobInput{
		TranscriptionJobName: aws.String(jobID),
		Media: &trtypes.Media{
			MediaFileUri: aws.String(fmt.Sprintf("s3://%s/%s", req.Bucket, req.ObjectKey)),
		},
		MediaFormat:      trtypes.MediaFormat(format),
		LanguageCode:     trtypes.LanguageCode(language),
		OutputBucketName: aws.String(req.Bucket),
		OutputKey:        aws.String(fmt.Sprintf("%s/%s_transcript.json", jobID, filename)),
	})
	if err != nil {
		return "", errors.TranscriptionError(jobID, err)
	}

	return aws.ToString(out.TranscriptionJob.TranscriptionJobName), nil
}

// Status returns the current lifecycle state of the named job.
func (p *Provider) Status(ctx context.Context, jobName string) (transcription.JobStatus, error) {
	job, err := p.getJob(ctx, jobName)
	if err != nil {
		return "", err
	}
	return transcription.JobStatus(job.TranscriptionJobStatus), nil
}

// FetchResult retrieves and decodes the finished transcript document.
func (p *Provider) FetchResult(ctx context.Context, jobName string) (*transcription.Result, error) {
	job, err := p.getJob(ctx, jobName)
	if err != nil {
		return nil, err
	}
	if job.TranscriptionJobStatus != trtypes.TranscriptionJobStatusCompleted {
		return nil, errors.TranscriptionError(jobName,
			fmt.Errorf("job status is %s, not %s", job.TranscriptionJobStatus, trtypes.TranscriptionJobStatusCompleted))
	}
	if job.Transcript == nil || job.Transcript.TranscriptFileUri == nil {
		return nil, errors.TranscriptionError(jobName, fmt.Errorf("job has no transcript file URI"))
	}

	bucket, key, err := parseTranscriptURI(aws.ToString(job.Transcript.TranscriptFileUri))
	if err != nil {
		return nil, errors.TranscriptionError(jobName, err)
	}

	obj, err := p.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.TranscriptionError(jobName, err)
	}
	defer obj.Body.Close() //nolint:errcheck // Error on close is safe to ignore for read operations

	return transcription.DecodeResult(obj.Body)
}

func (p *Provider) getJob(ctx context.Context, jobName string) (*trtypes.TranscriptionJob, error) {
	out, err := p.client.GetTranscriptionJob(ctx, &transcribe.GetTranscriptionJobInput{
		TranscriptionJobName: aws.String(jobName),
	})
	if err != nil {
		return nil, errors.TranscriptionError(jobName, err)
	}
	return out.TranscriptionJob, nil
}

// splitObjectKey splits "jobID/filename.ext" into the job ID and the bare
// filename without its extension.
func splitObjectKey(objectKey string) (jobID, filename string, err error) {
	jobID, rest, found := strings.Cut(objectKey, "/")
	if !found || jobID == "" || rest == "" {
		return "", "", errors.InvalidInput("object_key", fmt.Sprintf("expected jobID/filename.ext, got %q", objectKey))
	}
	if i := strings.LastIndexByte(rest, '.'); i > 0 {
		rest = rest[:i]
	}
	return jobID, rest, nil
}

// parseTranscriptURI extracts bucket and key from a Transcribe transcript
// file URI, which may be either an s3:// URI or the HTTPS form
// https://s3.<region>.amazonaws.com/<bucket>/<key>.
func parseTranscriptURI(uri string) (bucket, key string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("parse transcript URI %q: %w", uri, err)
	}

	switch u.Scheme {
	case "s3":
		if u.Host == "" || u.Path == "" {
			return "", "", fmt.Errorf("malformed s3 URI %q", uri)
		}
		return u.Host, strings.TrimPrefix(u.Path, "/"), nil
	case "https":
		path := strings.TrimPrefix(u.Path, "/")
		bucket, key, found := strings.Cut(path, "/")
		if !found || bucket == "" || key == "" {
			return "", "", fmt.Errorf("malformed transcript URI %q", uri)
		}
		return bucket, key, nil
	default:
		return "", "", fmt.Errorf("unsupported transcript URI scheme %q", u.Scheme)
	}
}
