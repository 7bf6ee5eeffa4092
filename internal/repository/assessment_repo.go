package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campusmind/internal/model"
)

// AssessmentRepo handles MongoDB operations for assessment records
type AssessmentRepo interface {
	Create(ctx context.Context, assessment *model.Assessment) error
	GetByID(ctx context.Context, id, studentID, collegeID string) (*model.Assessment, error)
	ListByStudent(ctx context.Context, studentID, collegeID string, form model.Instrument, limit, offset int64) ([]*model.Assessment, error)
	SeverityCounts(ctx context.Context, collegeID string) (map[model.Instrument]model.SeverityBreakdown, error)
}

// assessmentDoc is the storage shape: recommendedActions is persisted as
// one delimited scalar, decoded back to a sequence on read.
type assessmentDoc struct {
	ID                 string            `bson:"_id"`
	StudentID          string            `bson:"studentId"`
	CollegeID          string            `bson:"collegeId"`
	FormType           model.Instrument  `bson:"formType"`
	Responses          model.ResponseSet `bson:"responses"`
	Score              int               `bson:"score"`
	SeverityLevel      model.Severity    `bson:"severityLevel"`
	Guidance           string            `bson:"guidance"`
	RecommendedActions string            `bson:"recommendedActions"`
	CreatedAt          time.Time         `bson:"createdAt"`
}

func toDoc(a *model.Assessment) *assessmentDoc {
	return &assessmentDoc{
		ID:                 a.ID,
		StudentID:          a.StudentID,
		CollegeID:          a.CollegeID,
		FormType:           a.FormType,
		Responses:          a.Responses,
		Score:              a.Score,
		SeverityLevel:      a.SeverityLevel,
		Guidance:           a.Guidance,
		RecommendedActions: encodeActions(a.RecommendedActions),
		CreatedAt:          a.CreatedAt,
	}
}

func fromDoc(d *assessmentDoc) *model.Assessment {
	return &model.Assessment{
		ID:                 d.ID,
		StudentID:          d.StudentID,
		CollegeID:          d.CollegeID,
		FormType:           d.FormType,
		Responses:          d.Responses,
		Score:              d.Score,
		SeverityLevel:      d.SeverityLevel,
		Guidance:           d.Guidance,
		RecommendedActions: decodeActions(d.RecommendedActions),
		CreatedAt:          d.CreatedAt,
	}
}

type assessmentRepo struct {
	collection *mongo.Collection
}

// NewAssessmentRepo creates a new assessment repository
func NewAssessmentRepo(db *mongo.Database) AssessmentRepo {
	return &assessmentRepo{
		collection: db.Collection("assessments"),
	}
}

func (r *assessmentRepo) Create(ctx context.Context, assessment *model.Assessment) error {
	if assessment.CreatedAt.IsZero() {
		assessment.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, toDoc(assessment))
	return err
}

func (r *assessmentRepo) GetByID(ctx context.Context, id, studentID, collegeID string) (*model.Assessment, error) {
	filter := bson.M{"_id": id, "studentId": studentID, "collegeId": collegeID}

	var doc assessmentDoc
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return fromDoc(&doc), nil
}

func (r *assessmentRepo) ListByStudent(ctx context.Context, studentID, collegeID string, form model.Instrument, limit, offset int64) ([]*model.Assessment, error) {
	filter := bson.M{"studentId": studentID, "collegeId": collegeID}
	if form != "" {
		filter["formType"] = form
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []*assessmentDoc
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	assessments := make([]*model.Assessment, 0, len(docs))
	for _, doc := range docs {
		assessments = append(assessments, fromDoc(doc))
	}
	return assessments, nil
}

func (r *assessmentRepo) SeverityCounts(ctx context.Context, collegeID string) (map[model.Instrument]model.SeverityBreakdown, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"collegeId": collegeID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"formType": "$formType", "severityLevel": "$severityLevel"},
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID struct {
			FormType      model.Instrument `bson:"formType"`
			SeverityLevel model.Severity   `bson:"severityLevel"`
		} `bson:"_id"`
		Count int `bson:"count"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[model.Instrument]model.SeverityBreakdown)
	for _, row := range rows {
		if counts[row.ID.FormType] == nil {
			counts[row.ID.FormType] = model.SeverityBreakdown{}
		}
		counts[row.ID.FormType][row.ID.SeverityLevel] += row.Count
	}
	return counts, nil
}
