package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"alumnilink_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeTableKeys mirrors the key schema of each table so the fake can match
// items the way DynamoDB would.
var fakeTableKeys = map[string][]string{
	models.UserProfilesTable:   {"userId"},
	models.FriendsTable:        {"ownerId", "friendId"},
	models.BlockedUsersTable:   {"ownerId", "targetId"},
	models.BlockedByUsersTable: {"ownerId", "targetId"},
	models.FriendRequestsTable: {"targetId", "requesterId"},
	models.ConversationsTable:  {"conversationId"},
	models.MessagesTable:       {"conversationId", "messageId"},
}

// fakeDynamo is an in-memory DynamoAPI. Writes against a table listed in
// failTables fail before anything is applied, which lets tests assert
// all-or-nothing behavior.
type fakeDynamo struct {
	mu         sync.Mutex
	tables     map[string][]map[string]types.AttributeValue
	failTables map[string]bool
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{
		tables:     make(map[string][]map[string]types.AttributeValue),
		failTables: make(map[string]bool),
	}
}

func attrS(av types.AttributeValue) string {
	if v, ok := av.(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func matchesKey(item, key map[string]types.AttributeValue) bool {
	for name, value := range key {
		if attrS(item[name]) != attrS(value) {
			return false
		}
	}
	return true
}

func (f *fakeDynamo) keyFor(tableName string, item map[string]types.AttributeValue) map[string]types.AttributeValue {
	key := make(map[string]types.AttributeValue)
	for _, attr := range fakeTableKeys[tableName] {
		key[attr] = item[attr]
	}
	return key
}

func (f *fakeDynamo) putRaw(tableName string, item map[string]types.AttributeValue) {
	key := f.keyFor(tableName, item)
	items := f.tables[tableName]
	for i, existing := range items {
		if matchesKey(existing, key) {
			items[i] = item
			return
		}
	}
	f.tables[tableName] = append(items, item)
}

func (f *fakeDynamo) PutItem(_ context.Context, tableName string, item interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failTables[tableName] {
		return fmt.Errorf("injected failure for table %s", tableName)
	}
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	f.putRaw(tableName, marshaled)
	return nil
}

func (f *fakeDynamo) GetItem(_ context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.tables[tableName] {
		if matchesKey(item, key) {
			return item, nil
		}
	}
	return nil, ErrItemNotFound
}

func (f *fakeDynamo) DeleteItem(_ context.Context, tableName string, key map[string]types.AttributeValue) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failTables[tableName] {
		return fmt.Errorf("injected failure for table %s", tableName)
	}
	items := f.tables[tableName]
	for i, item := range items {
		if matchesKey(item, key) {
			f.tables[tableName] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return nil
}

// queryByAttr serves the "attr = :value" key conditions the services use.
// The limit cuts in stored order, the way the real store cuts in sort-key
// order before any caller-side processing.
func (f *fakeDynamo) queryByAttr(tableName, keyCondition string, values map[string]types.AttributeValue, limit int32) ([]map[string]types.AttributeValue, error) {
	parts := strings.SplitN(keyCondition, " = ", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("fake cannot parse key condition %q", keyCondition)
	}
	attrName := strings.TrimPrefix(strings.TrimSpace(parts[0]), "#")
	want := attrS(values[strings.TrimSpace(parts[1])])

	var matched []map[string]types.AttributeValue
	for _, item := range f.tables[tableName] {
		if attrS(item[attrName]) == want {
			matched = append(matched, item)
			if limit > 0 && len(matched) == int(limit) {
				break
			}
		}
	}
	return matched, nil
}

func (f *fakeDynamo) QueryItems(_ context.Context, tableName, keyCondition string, values map[string]types.AttributeValue, _ map[string]string, limit int32) ([]map[string]types.AttributeValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queryByAttr(tableName, keyCondition, values, limit)
}

func (f *fakeDynamo) QueryItemsWithIndex(_ context.Context, tableName, _, keyCondition string, values map[string]types.AttributeValue, _ map[string]string, limit int32) ([]map[string]types.AttributeValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queryByAttr(tableName, keyCondition, values, limit)
}

func (f *fakeDynamo) UpdateItem(_ context.Context, tableName, updateExpression string, key map[string]types.AttributeValue, values map[string]types.AttributeValue, names map[string]string) (map[string]types.AttributeValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failTables[tableName] {
		return nil, fmt.Errorf("injected failure for table %s", tableName)
	}

	var target map[string]types.AttributeValue
	for _, item := range f.tables[tableName] {
		if matchesKey(item, key) {
			target = item
			break
		}
	}
	if target == nil {
		target = make(map[string]types.AttributeValue)
		for name, value := range key {
			target[name] = value
		}
		f.tables[tableName] = append(f.tables[tableName], target)
	}

	resolve := func(name string) string {
		if resolved, ok := names[name]; ok {
			return resolved
		}
		return strings.TrimPrefix(name, "#")
	}

	switch {
	case strings.HasPrefix(updateExpression, "SET "):
		// single-assignment form: SET <name> = <placeholder>
		parts := strings.SplitN(strings.TrimPrefix(updateExpression, "SET "), " = ", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("fake cannot parse update expression %q", updateExpression)
		}
		target[resolve(strings.TrimSpace(parts[0]))] = values[strings.TrimSpace(parts[1])]
	case strings.HasPrefix(updateExpression, "REMOVE "):
		delete(target, resolve(strings.TrimSpace(strings.TrimPrefix(updateExpression, "REMOVE "))))
	default:
		return nil, fmt.Errorf("fake cannot parse update expression %q", updateExpression)
	}
	return target, nil
}

func (f *fakeDynamo) ScanWithFilter(_ context.Context, tableName string, filterFunc func(map[string]types.AttributeValue) bool, excludeFields map[string]string, result interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var filtered []map[string]types.AttributeValue
	for _, item := range f.tables[tableName] {
		excluded := false
		for name, value := range excludeFields {
			if attrS(item[name]) == value {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}
		if filterFunc != nil && !filterFunc(item) {
			continue
		}
		filtered = append(filtered, item)
	}
	return attributevalue.UnmarshalListOfMaps(filtered, result)
}

func (f *fakeDynamo) TransactWriteItems(_ context.Context, items []types.TransactWriteItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	// All-or-nothing: check every member before applying any.
	for _, item := range items {
		var tableName string
		switch {
		case item.Put != nil:
			tableName = *item.Put.TableName
		case item.Delete != nil:
			tableName = *item.Delete.TableName
		}
		if f.failTables[tableName] {
			return fmt.Errorf("injected transaction failure for table %s", tableName)
		}
	}

	for _, item := range items {
		switch {
		case item.Put != nil:
			f.putRaw(*item.Put.TableName, item.Put.Item)
		case item.Delete != nil:
			tableName := *item.Delete.TableName
			stored := f.tables[tableName]
			for i, existing := range stored {
				if matchesKey(existing, item.Delete.Key) {
					f.tables[tableName] = append(stored[:i], stored[i+1:]...)
					break
				}
			}
		}
	}
	return nil
}

// count returns how many items a table holds.
func (f *fakeDynamo) count(tableName string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tables[tableName])
}
