package s3

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
)

// MockObjectAPI мок для S3 клиента
type MockObjectAPI struct {
	getObjectFunc func(input *s3.GetObjectInput) (*s3.GetObjectOutput, error)
}

func (m *MockObjectAPI) GetObjectWithContext(ctx aws.Context, input *s3.GetObjectInput, opts ...request.Option) (*s3.GetObjectOutput, error) {
	return m.getObjectFunc(input)
}

func TestParseLocator(t *testing.T) {
	tests := []struct {
		locator string
		bucket  string
		key     string
		wantErr bool
	}{
		{"s3://music/song.mp3", "music", "song.mp3", false},
		{"s3://music/albums/a/song.mp3", "music", "albums/a/song.mp3", false},
		{"s3://music", "", "", true},
		{"s3:///song.mp3", "", "", true},
		{"https://example.com/song.mp3", "", "", true},
	}

	for _, test := range tests {
		bucket, key, err := ParseLocator(test.locator)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseLocator(%s): ошибка %v, ожидалась ошибка: %v", test.locator, err, test.wantErr)
			continue
		}
		if bucket != test.bucket || key != test.key {
			t.Errorf("ParseLocator(%s) = %s, %s; ожидалось %s, %s", test.locator, bucket, key, test.bucket, test.key)
		}
	}
}

func TestOpen(t *testing.T) {
	mock := &MockObjectAPI{
		getObjectFunc: func(input *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
			if aws.StringValue(input.Bucket) != "music" {
				t.Errorf("Ожидался бакет music, получено %s", aws.StringValue(input.Bucket))
			}
			if aws.StringValue(input.Key) != "a/song.mp3" {
				t.Errorf("Ожидался ключ a/song.mp3, получено %s", aws.StringValue(input.Key))
			}
			return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader("audio"))}, nil
		},
	}

	objects := NewObjectsWithAPI(mock)
	body, err := objects.Open(context.Background(), "s3://music/a/song.mp3")
	if err != nil {
		t.Fatalf("Неожиданная ошибка: %v", err)
	}
	defer body.Close()

	content, _ := io.ReadAll(body)
	if string(content) != "audio" {
		t.Errorf("Неожиданное содержимое: %q", content)
	}
}

func TestOpenError(t *testing.T) {
	mock := &MockObjectAPI{
		getObjectFunc: func(input *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
			return nil, awserr.New(s3.ErrCodeNoSuchKey, "not found", errors.New("404"))
		},
	}

	_, err := NewObjectsWithAPI(mock).Open(context.Background(), "s3://music/missing.mp3")
	if err == nil {
		t.Fatal("Ожидалась ошибка")
	}
	if !strings.Contains(err.Error(), "ошибка чтения объекта из S3") {
		t.Errorf("Неожиданное сообщение об ошибке: %v", err)
	}

	var aerr awserr.Error
	if !errors.As(err, &aerr) || aerr.Code() != s3.ErrCodeNoSuchKey {
		t.Errorf("Ожидалась ошибка AWS с кодом NoSuchKey, получено: %v", err)
	}
}

func TestOpenInvalidLocator(t *testing.T) {
	mock := &MockObjectAPI{
		getObjectFunc: func(input *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
			t.Error("API не должен вызываться для некорректного локатора")
			return nil, nil
		},
	}

	if _, err := NewObjectsWithAPI(mock).Open(context.Background(), "s3://bucket-only"); err == nil {
		t.Error("Ожидалась ошибка для некорректного локатора")
	}
}

func TestNewObjectsWithEndpoint(t *testing.T) {
	objects, err := NewObjects(&Config{
		Region:    "us-east-1",
		AccessKey: "key",
		SecretKey: "secret",
		Endpoint:  "http://localhost:9000",
	})
	if err != nil {
		t.Fatalf("Ошибка создания клиента: %v", err)
	}
	if objects.api == nil {
		t.Error("API клиента не должен быть nil")
	}
}
