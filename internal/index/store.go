// ABOUTME: Embedded restaurant index backed by SQLite with cosine similarity search
// ABOUTME: Embeddings are computed once at build time and loaded into memory for search
package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/adrg/xdg"
	"github.com/harper/tablescout/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

// Embedder produces an embedding vector for a text
type Embedder interface {
	GenerateEmbedding(text string) ([]float64, error)
}

// Store is the restaurant retrieval index. Search embeds the query and ranks
// all indexed documents by cosine similarity.
type Store struct {
	db       *sql.DB
	embedder Embedder
	docs     []indexedDoc
	log      *slog.Logger
}

type indexedDoc struct {
	doc    models.Document
	vector []float64
}

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	rowid_key INTEGER PRIMARY KEY AUTOINCREMENT,
	restaurant_id TEXT NOT NULL,
	content TEXT NOT NULL,
	metadata TEXT NOT NULL,
	embedding TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_documents_restaurant ON documents(restaurant_id);
`

// DefaultPath returns the XDG-compliant index database path
func DefaultPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = xdg.DataHome
	}
	return filepath.Join(dataHome, "tablescout", "restaurant_index.db")
}

// Open opens an index database, creating the schema if needed, and loads all
// stored documents and their vectors into memory
func Open(path string, embedder Embedder) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening index database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating index schema: %w", err)
	}

	s := &Store{
		db:       db,
		embedder: embedder,
		log:      slog.With("component", "index"),
	}
	if err := s.loadAll(); err != nil {
		db.Close()
		return nil, err
	}

	s.log.Info("opened restaurant index", "path", path, "documents", len(s.docs))
	return s, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// Len returns the number of indexed documents
func (s *Store) Len() int {
	return len(s.docs)
}

// Build embeds and stores the given documents, replacing any prior index
// contents
func (s *Store) Build(ctx context.Context, docs []models.Document) error {
	if _, err := s.db.Exec(`DELETE FROM documents`); err != nil {
		return fmt.Errorf("clearing index: %w", err)
	}
	s.docs = nil

	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}

		vector, err := s.embedder.GenerateEmbedding(doc.Content)
		if err != nil {
			return fmt.Errorf("embedding document %d (%s): %w", i, doc.Metadata.Name, err)
		}

		if err := s.insert(doc, vector); err != nil {
			return err
		}
		s.docs = append(s.docs, indexedDoc{doc: doc, vector: vector})

		if (i+1)%50 == 0 {
			s.log.Info("index build progress", "indexed", i+1, "total", len(docs))
		}
	}

	s.log.Info("index build complete", "documents", len(docs))
	return nil
}

func (s *Store) insert(doc models.Document, vector []float64) error {
	metadata, err := json.Marshal(doc.Metadata)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	embedding, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("marshaling embedding: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO documents (restaurant_id, content, metadata, embedding) VALUES (?, ?, ?, ?)`,
		doc.Metadata.ID, doc.Content, string(metadata), string(embedding),
	)
	if err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}
	return nil
}

// loadAll reads every stored document and vector into memory
func (s *Store) loadAll() error {
	rows, err := s.db.Query(`SELECT content, metadata, embedding FROM documents ORDER BY rowid_key`)
	if err != nil {
		return fmt.Errorf("loading index: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var content, metadataJSON, embeddingJSON string
		if err := rows.Scan(&content, &metadataJSON, &embeddingJSON); err != nil {
			return fmt.Errorf("scanning index row: %w", err)
		}

		var metadata models.DocumentMetadata
		if err := json.Unmarshal([]byte(metadataJSON), &metadata); err != nil {
			return fmt.Errorf("parsing stored metadata: %w", err)
		}
		var vector []float64
		if err := json.Unmarshal([]byte(embeddingJSON), &vector); err != nil {
			return fmt.Errorf("parsing stored embedding: %w", err)
		}

		s.docs = append(s.docs, indexedDoc{
			doc:    models.Document{Content: content, Metadata: metadata},
			vector: vector,
		})
	}
	return rows.Err()
}

// Search embeds the query and returns the topK most similar documents ranked
// by cosine similarity. Results may repeat restaurant ids; callers dedup.
func (s *Store) Search(ctx context.Context, query string, topK int) ([]models.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	queryVector, err := s.embedder.GenerateEmbedding(query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results := make([]models.Document, 0, len(s.docs))
	for _, d := range s.docs {
		doc := d.doc
		doc.Score = cosineSimilarity(queryVector, d.vector)
		results = append(results, doc)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// cosineSimilarity calculates cosine similarity between two vectors
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
