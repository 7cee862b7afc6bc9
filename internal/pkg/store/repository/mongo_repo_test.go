package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type testModel struct {
	Name string `bson:"name"`
	Age  int    `bson:"age"`
}

type mockMongoCollection struct {
	mock.Mock
}

func (m *mockMongoCollection) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	args := m.Called(ctx, document, opts)
	return args.Get(0).(*mongo.InsertOneResult), args.Error(1)
}

func (m *mockMongoCollection) InsertMany(ctx context.Context, documents []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error) {
	args := m.Called(ctx, documents, opts)
	return args.Get(0).(*mongo.InsertManyResult), args.Error(1)
}

func (m *mockMongoCollection) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult {
	args := m.Called(ctx, filter, opts)
	return args.Get(0).(*mongo.SingleResult)
}

func (m *mockMongoCollection) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	args := m.Called(ctx, filter, opts)
	cursor, _ := args.Get(0).(*mongo.Cursor)
	return cursor, args.Error(1)
}

func (m *mockMongoCollection) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	args := m.Called(ctx, filter, update, opts)
	return args.Get(0).(*mongo.UpdateResult), args.Error(1)
}

func (m *mockMongoCollection) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	args := m.Called(ctx, filter, opts)
	return args.Get(0).(*mongo.DeleteResult), args.Error(1)
}

func (m *mockMongoCollection) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	args := m.Called(ctx, filter, opts)
	return args.Get(0).(int64), args.Error(1)
}

func TestCreate(t *testing.T) {
	mockColl := new(mockMongoCollection)
	repo := NewMongoRepository[testModel](mockColl)

	doc := testModel{Name: "abcdef", Age: 25}
	expectedResult := &mongo.InsertOneResult{}

	mockColl.On("InsertOne", mock.Anything, doc, mock.Anything).Return(expectedResult, nil)

	result, err := repo.Create(context.Background(), doc)

	assert.NoError(t, err)
	assert.Equal(t, expectedResult, result)
	mockColl.AssertExpectations(t)
}

func TestCreateMany(t *testing.T) {
	mockColl := new(mockMongoCollection)
	repo := NewMongoRepository[testModel](mockColl)

	docs := []interface{}{
		testModel{Name: "one", Age: 1},
		testModel{Name: "two", Age: 2},
	}
	expectedResult := &mongo.InsertManyResult{}

	mockColl.On("InsertMany", mock.Anything, docs, mock.Anything).Return(expectedResult, nil)

	result, err := repo.CreateMany(context.Background(), docs)

	assert.NoError(t, err)
	assert.Equal(t, expectedResult, result)
	mockColl.AssertExpectations(t)
}

func TestFindOne(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mockColl := new(mockMongoCollection)
		repo := NewMongoRepository[testModel](mockColl)

		doc := testModel{Name: "abcdef", Age: 25}
		sr := mongo.NewSingleResultFromDocument(doc, nil, nil)
		mockColl.On("FindOne", mock.Anything, bson.M{"name": "abcdef"}, mock.Anything).Return(sr)

		result, err := repo.FindOne(context.Background(), bson.M{"name": "abcdef"}, options.FindOne())

		assert.NoError(t, err)
		assert.Equal(t, doc, result)
		mockColl.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockColl := new(mockMongoCollection)
		repo := NewMongoRepository[testModel](mockColl)

		sr := mongo.NewSingleResultFromDocument(testModel{}, mongo.ErrNoDocuments, nil)
		mockColl.On("FindOne", mock.Anything, bson.M{"name": "missing"}, mock.Anything).Return(sr)

		_, err := repo.FindOne(context.Background(), bson.M{"name": "missing"}, options.FindOne())

		assert.ErrorIs(t, err, mongo.ErrNoDocuments)
		mockColl.AssertExpectations(t)
	})
}

func TestFind(t *testing.T) {
	t.Run("returns all decoded documents", func(t *testing.T) {
		mockColl := new(mockMongoCollection)
		repo := NewMongoRepository[testModel](mockColl)

		cursor, err := mongo.NewCursorFromDocuments([]interface{}{
			testModel{Name: "one", Age: 1},
			testModel{Name: "two", Age: 2},
		}, nil, nil)
		assert.NoError(t, err)

		mockColl.On("Find", mock.Anything, bson.M{}, mock.Anything).Return(cursor, nil)

		results, err := repo.Find(context.Background(), bson.M{})

		assert.NoError(t, err)
		assert.Len(t, results, 2)
		assert.Equal(t, "one", results[0].Name)
		mockColl.AssertExpectations(t)
	})

	t.Run("propagates find error", func(t *testing.T) {
		mockColl := new(mockMongoCollection)
		repo := NewMongoRepository[testModel](mockColl)

		mockColl.On("Find", mock.Anything, bson.M{}, mock.Anything).Return(nil, errors.New("find failed"))

		_, err := repo.Find(context.Background(), bson.M{})

		assert.Error(t, err)
		mockColl.AssertExpectations(t)
	})
}

func TestUpdateOne(t *testing.T) {
	mockColl := new(mockMongoCollection)
	repo := NewMongoRepository[testModel](mockColl)

	filter := bson.M{"name": "abcdef", "version": int32(2)}
	update := bson.M{"$set": bson.M{"age": 26}, "$inc": bson.M{"version": 1}}
	expectedResult := &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}

	mockColl.On("UpdateOne", mock.Anything, filter, update, mock.Anything).Return(expectedResult, nil)

	result, err := repo.UpdateOne(context.Background(), filter, update)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.MatchedCount)
	mockColl.AssertExpectations(t)
}

func TestDelete(t *testing.T) {
	mockColl := new(mockMongoCollection)
	repo := NewMongoRepository[testModel](mockColl)

	filter := bson.M{"name": "abcdef"}
	mockColl.On("DeleteOne", mock.Anything, filter, mock.Anything).Return(&mongo.DeleteResult{DeletedCount: 1}, nil)

	err := repo.Delete(context.Background(), filter)

	assert.NoError(t, err)
	mockColl.AssertExpectations(t)
}

func TestCountDocuments(t *testing.T) {
	mockColl := new(mockMongoCollection)
	repo := NewMongoRepository[testModel](mockColl)

	mockColl.On("CountDocuments", mock.Anything, bson.M{"loanId": "loan-1"}, mock.Anything).Return(int64(3), nil)

	count, err := repo.CountDocuments(context.Background(), bson.M{"loanId": "loan-1"})

	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
	mockColl.AssertExpectations(t)
}
