package account

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const accountsCollection = "accounts"

// firestoreAccount maps to the Firestore document written by the
// registration workflow.
type firestoreAccount struct {
	Username   string    `firestore:"username"`
	Email      string    `firestore:"email"`
	FirstName  string    `firestore:"first_name"`
	LastName   string    `firestore:"last_name"`
	Admin      bool      `firestore:"is_admin"`
	DateJoined time.Time `firestore:"date_joined"`
}

func (fa *firestoreAccount) toAccount(uid string) *Account {
	return &Account{
		UID:        uid,
		Username:   fa.Username,
		Email:      fa.Email,
		FirstName:  fa.FirstName,
		LastName:   fa.LastName,
		Admin:      fa.Admin,
		DateJoined: fa.DateJoined,
	}
}

// FirestoreDirectory implements Directory over the accounts collection.
type FirestoreDirectory struct {
	client *firestore.Client
}

// NewFirestoreDirectory creates a Firestore-backed directory.
func NewFirestoreDirectory(client *firestore.Client) *FirestoreDirectory {
	return &FirestoreDirectory{client: client}
}

// Get retrieves an account by UID.
func (d *FirestoreDirectory) Get(ctx context.Context, uid string) (*Account, error) {
	doc, err := d.client.Collection(accountsCollection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var fa firestoreAccount
	if err := doc.DataTo(&fa); err != nil {
		return nil, err
	}
	return fa.toAccount(doc.Ref.ID), nil
}

// GetByUsername retrieves an account by its unique username.
func (d *FirestoreDirectory) GetByUsername(ctx context.Context, username string) (*Account, error) {
	docs, err := d.client.Collection(accountsCollection).
		Where("username", "==", username).
		Limit(1).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}

	var fa firestoreAccount
	if err := docs[0].DataTo(&fa); err != nil {
		return nil, err
	}
	return fa.toAccount(docs[0].Ref.ID), nil
}

// List returns every account ordered by join date.
func (d *FirestoreDirectory) List(ctx context.Context) ([]*Account, error) {
	docs, err := d.client.Collection(accountsCollection).
		OrderBy("date_joined", firestore.Asc).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, err
	}

	accounts := make([]*Account, 0, len(docs))
	for _, doc := range docs {
		var fa firestoreAccount
		if err := doc.DataTo(&fa); err != nil {
			return nil, err
		}
		accounts = append(accounts, fa.toAccount(doc.Ref.ID))
	}
	return accounts, nil
}

// Compile-time interface check
var _ Directory = (*FirestoreDirectory)(nil)
