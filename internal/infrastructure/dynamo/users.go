package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-accounts-api/internal/domain"
)

// UserRepo provides typed DynamoDB operations for the users table plus the
// user_emails claim table that enforces email uniqueness at the storage layer.
type UserRepo struct {
	client      *dynamodb.Client
	usersTable  string
	emailsTable string
}

func NewUserRepo(client *dynamodb.Client, usersTable, emailsTable string) *UserRepo {
	return &UserRepo{client: client, usersTable: usersTable, emailsTable: emailsTable}
}

// Create persists a user and claims its email in one transaction. The claim
// item carries attribute_not_exists(email), so two concurrent creations with
// the same email cannot both succeed regardless of any earlier application
// pre-check. A lost race surfaces as domain.ErrDuplicateEmail.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	userItem, err := attributevalue.MarshalMap(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName: aws.String(r.usersTable),
					Item:      userItem,
				},
			},
			{
				Put: &types.Put{
					TableName: aws.String(r.emailsTable),
					Item: map[string]types.AttributeValue{
						"email":   &types.AttributeValueMemberS{Value: u.Email},
						"user_id": &types.AttributeValueMemberS{Value: u.UserID},
					},
					ConditionExpression: aws.String("attribute_not_exists(email)"),
				},
			},
		},
	})
	if err != nil {
		if isConditionalCancellation(err) {
			return fmt.Errorf("create user %s: %w", u.Email, domain.ErrDuplicateEmail)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepo) Get(ctx context.Context, userID string) (*domain.User, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.usersTable),
		Key:       strKey("user_id", userID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	var u domain.User
	if err := attributevalue.UnmarshalMap(out.Item, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail resolves the email claim item to a user id, then loads the user.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.emailsTable),
		Key:       strKey("email", email),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("email %s: %w", email, domain.ErrNotFound)
	}
	userID, ok := out.Item["user_id"].(*types.AttributeValueMemberS)
	if !ok {
		return nil, fmt.Errorf("email claim for %s has no user_id", email)
	}
	return r.Get(ctx, userID.Value)
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.usersTable),
	})
	if err != nil {
		return nil, err
	}
	var users []domain.User
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepo) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.usersTable),
		Key:                       strKey("user_id", userID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

// isConditionalCancellation reports whether a TransactWriteItems error was
// caused by a failed condition check (the email claim already exists).
func isConditionalCancellation(err error) bool {
	var tce *types.TransactionCanceledException
	if errors.As(err, &tce) {
		for _, reason := range tce.CancellationReasons {
			if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
				return true
			}
		}
	}
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}
