package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FileKind is the type of a catalog entry.
type FileKind string

const (
	KindFolder FileKind = "folder"
	KindFile   FileKind = "file"
	KindImage  FileKind = "image"
)

// RootParent is the sentinel parentId for top-level files and folders.
// It is stored and exposed as the string "0" everywhere; real parents are
// ObjectID hex strings.
const RootParent = "0"

// ValidKind reports whether k is one of the accepted file kinds.
func ValidKind(k FileKind) bool {
	return k == KindFolder || k == KindFile || k == KindImage
}

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
}

// File is a catalog record. Folders never carry a LocalPath; files and
// images reference exactly one blob through it.
type File struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID   string             `bson:"userId" json:"userId"`
	Name      string             `bson:"name" json:"name"`
	Kind      FileKind           `bson:"type" json:"type"`
	IsPublic  bool               `bson:"isPublic" json:"isPublic"`
	ParentID  string             `bson:"parentId" json:"parentId"`
	LocalPath string             `bson:"localPath,omitempty" json:"-"`
}
