package etl

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const sourceCollection = "performance"

// Runner wires the transform to its collaborators: the record store it
// extracts from and the directory it writes to.
type Runner struct {
	Client       *mongo.Client
	DatabaseName string
	OutputDir    string
	Log          *zap.SugaredLogger
}

// Run executes one batch: extract, transform, write. Extraction and schema
// errors abort the run; a failed primary write gets exactly one emergency
// fallback attempt, and a failure of both is reported but not returned —
// at that point the run is over either way.
func (r *Runner) Run(ctx context.Context) error {
	docs, err := r.extract(ctx)
	if err != nil {
		return err
	}
	r.Log.Infow("extracted source records", "count", len(docs))

	res, err := Transform(docs)
	if err != nil {
		return err
	}

	dir, err := ResolveOutputDir(r.OutputDir)
	if err != nil {
		return err
	}

	info, err := WriteArtifact(res, dir, time.Now())
	if err == nil {
		r.Log.Infow("artifact saved",
			"path", info.Path,
			"size_kb", fmt.Sprintf("%.2f", float64(info.SizeBytes)/1024),
			"rows", info.Rows,
		)
		return nil
	}

	r.Log.Errorw("primary write failed", "error", err)
	path, fallbackErr := WriteEmergency(res)
	if fallbackErr != nil {
		r.Log.Errorw("emergency write failed", "error", fallbackErr)
		return nil
	}
	r.Log.Warnw("emergency artifact saved", "path", path, "rows", len(res.Rows))
	return nil
}

func (r *Runner) extract(ctx context.Context) ([]bson.D, error) {
	db := r.Client.Database(r.DatabaseName)

	names, err := db.ListCollectionNames(ctx, bson.M{"name": sourceCollection})
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("collection %q not found in database %q", sourceCollection, r.DatabaseName)
	}

	coll := db.Collection(sourceCollection)

	var sample bson.D
	err = coll.FindOne(ctx, bson.M{}, options.FindOne().SetProjection(bson.M{"_id": 0})).Decode(&sample)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("collection %q is empty", sourceCollection)
	}
	if err != nil {
		return nil, fmt.Errorf("sample document: %w", err)
	}
	r.Log.Infow("sample document", "fields", sample)

	cursor, err := coll.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 0}))
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", sourceCollection, err)
	}
	defer cursor.Close(ctx)

	// bson.D keeps field order so the artifact's column order follows the
	// source documents.
	var docs []bson.D
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", sourceCollection, err)
	}
	return docs, nil
}
