package firebase

import (
	"context"
	"fmt"
	"os"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// Uploader stores a blob and returns a publicly retrievable URL for it.
type Uploader interface {
	Upload(ctx context.Context, objectName, contentType string, data []byte) (string, error)
}

// App holds the initialized Firebase app and its storage bucket
type App struct {
	FirebaseApp *firebase.App
	Bucket      *gcs.BucketHandle
	bucketName  string
}

// InitFirebase initializes the Firebase application and its default Cloud
// Storage bucket, which holds the uploaded blog images
func InitFirebase(ctx context.Context, credentialsPath, bucketName string) (*App, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("Firebase credentials path not provided")
	}
	if bucketName == "" {
		return nil, fmt.Errorf("Firebase storage bucket not provided")
	}

	// Check if the credentials file exists
	if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("Firebase credentials file not found at %s", credentialsPath)
	}

	opt := option.WithCredentialsFile(credentialsPath)

	firebaseApp, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: bucketName}, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	storageClient, err := firebaseApp.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase storage client: %w", err)
	}

	bucket, err := storageClient.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("error getting default storage bucket: %w", err)
	}

	logrus.Info("Firebase app and storage bucket initialized successfully!")
	return &App{FirebaseApp: firebaseApp, Bucket: bucket, bucketName: bucketName}, nil
}

// Upload writes the blob under objectName, makes it world-readable and
// returns its public URL
func (a *App) Upload(ctx context.Context, objectName, contentType string, data []byte) (string, error) {
	obj := a.Bucket.Object(objectName)

	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", fmt.Errorf("error writing object %s: %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("error finalizing object %s: %w", objectName, err)
	}

	if err := obj.ACL().Set(ctx, gcs.AllUsers, gcs.RoleReader); err != nil {
		return "", fmt.Errorf("error publishing object %s: %w", objectName, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", a.bucketName, objectName), nil
}
