// Package s3 предоставляет чтение аудио объектов из Amazon S3 (и совместимых хранилищ)
package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Scheme префикс локатора S3 объекта
const Scheme = "s3://"

// Config содержит настройки для S3
type Config struct {
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string
}

// ObjectAPI часть клиента S3, нужная для чтения объектов
type ObjectAPI interface {
	GetObjectWithContext(ctx aws.Context, input *s3.GetObjectInput, opts ...request.Option) (*s3.GetObjectOutput, error)
}

// Objects читает объекты из S3
type Objects struct {
	api ObjectAPI
}

// NewObjects создает клиент S3 по настройкам.
// Без ключей используется стандартная цепочка учетных данных AWS.
func NewObjects(config *Config) (*Objects, error) {
	awsConfig := &aws.Config{}
	if config.Region != "" {
		awsConfig.Region = aws.String(config.Region)
	}
	if config.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(
			config.AccessKey,
			config.SecretKey,
			"",
		)
	}

	// Если указан endpoint, добавляем его
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания AWS сессии: %w", err)
	}

	return NewObjectsWithAPI(s3.New(sess)), nil
}

// NewObjectsWithAPI создает клиент поверх готового API
func NewObjectsWithAPI(api ObjectAPI) *Objects {
	return &Objects{api: api}
}

// ParseLocator разбирает локатор s3://bucket/key
func ParseLocator(locator string) (bucket, key string, err error) {
	if !strings.HasPrefix(locator, Scheme) {
		return "", "", fmt.Errorf("не S3 локатор: %s", locator)
	}
	bucket, key, ok := strings.Cut(strings.TrimPrefix(locator, Scheme), "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("некорректный S3 локатор: %s", locator)
	}
	return bucket, key, nil
}

// Open открывает объект для чтения
func (o *Objects) Open(ctx context.Context, locator string) (io.ReadCloser, error) {
	bucket, key, err := ParseLocator(locator)
	if err != nil {
		return nil, err
	}

	out, err := o.api.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения объекта из S3: %w", err)
	}

	return out.Body, nil
}
