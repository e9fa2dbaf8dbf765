/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bnd

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"path"
	"strings"

	"github.com/hyperledger/composer-sdk-go/pkg/errors"
)

// Archive member names.
const (
	packageFileName = "package.json"
	modelsDirName   = "models"
)

type packageDescriptor struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
}

// BusinessNetworkDefinition is the deserialized form of a business network
// archive: its identifying metadata plus the model manager, factory and
// serializer for its types.
type BusinessNetworkDefinition struct {
	name        string
	version     string
	description string

	modelManager *ModelManager
	factory      *Factory
	serializer   *Serializer
	modelFiles   []*ModelFile
}

// NewBusinessNetworkDefinition creates a definition from metadata and model
// files.
func NewBusinessNetworkDefinition(name, version, description string, modelFiles ...*ModelFile) (*BusinessNetworkDefinition, error) {
	if name == "" {
		return nil, errors.New("business network name not specified")
	}
	if version == "" {
		return nil, errors.New("business network version not specified")
	}
	modelManager := NewModelManager()
	for _, mf := range modelFiles {
		if err := modelManager.AddModelFile(mf); err != nil {
			return nil, err
		}
	}
	factory := NewFactory(modelManager)
	return &BusinessNetworkDefinition{
		name:         name,
		version:      version,
		description:  description,
		modelManager: modelManager,
		factory:      factory,
		serializer:   NewSerializer(modelManager, factory),
		modelFiles:   modelFiles,
	}, nil
}

// Name returns the business network name.
func (d *BusinessNetworkDefinition) Name() string {
	return d.name
}

// Version returns the business network version.
func (d *BusinessNetworkDefinition) Version() string {
	return d.version
}

// Description returns the business network description.
func (d *BusinessNetworkDefinition) Description() string {
	return d.description
}

// Identifier returns name@version.
func (d *BusinessNetworkDefinition) Identifier() string {
	return d.name + "@" + d.version
}

// ModelManager returns the network's model manager.
func (d *BusinessNetworkDefinition) ModelManager() *ModelManager {
	return d.modelManager
}

// Factory returns the network's resource factory.
func (d *BusinessNetworkDefinition) Factory() *Factory {
	return d.factory
}

// Serializer returns the network's serializer.
func (d *BusinessNetworkDefinition) Serializer() *Serializer {
	return d.serializer
}

// FromArchive reads a business network archive: a zip containing
// package.json and models/*.json.
func FromArchive(archive []byte) (*BusinessNetworkDefinition, error) {
	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, errors.Wrap(err, "invalid business network archive")
	}

	var pkg *packageDescriptor
	var modelFiles []*ModelFile
	for _, file := range reader.File {
		name := path.Clean(file.Name)
		switch {
		case name == packageFileName:
			data, err := readArchiveFile(file)
			if err != nil {
				return nil, err
			}
			pkg = &packageDescriptor{}
			if err := json.Unmarshal(data, pkg); err != nil {
				return nil, errors.Wrap(err, "invalid package.json in business network archive")
			}
		case strings.HasPrefix(name, modelsDirName+"/") && strings.HasSuffix(name, ".json"):
			data, err := readArchiveFile(file)
			if err != nil {
				return nil, err
			}
			mf, err := ParseModelFile(data)
			if err != nil {
				return nil, errors.WithMessagef(err, "invalid model file %s in business network archive", name)
			}
			modelFiles = append(modelFiles, mf)
		}
	}
	if pkg == nil {
		return nil, errors.New("business network archive is missing package.json")
	}
	return NewBusinessNetworkDefinition(pkg.Name, pkg.Version, pkg.Description, modelFiles...)
}

// FromBase64 reads a base64-encoded business network archive, the form
// returned by the getBusinessNetwork chaincode query.
func FromBase64(encoded []byte) (*BusinessNetworkDefinition, error) {
	archive := make([]byte, base64.StdEncoding.DecodedLen(len(encoded)))
	n, err := base64.StdEncoding.Decode(archive, encoded)
	if err != nil {
		return nil, errors.Wrap(err, "business network archive is not valid base64")
	}
	return FromArchive(archive[:n])
}

// ToArchive writes the definition as a business network archive.
func (d *BusinessNetworkDefinition) ToArchive() ([]byte, error) {
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)

	pkg, err := json.Marshal(packageDescriptor{Name: d.name, Version: d.version, Description: d.description})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal package.json")
	}
	if err := writeArchiveFile(writer, packageFileName, pkg); err != nil {
		return nil, err
	}
	for _, mf := range d.modelFiles {
		data, err := json.Marshal(mf)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal model file %s", mf.Namespace)
		}
		name := path.Join(modelsDirName, mf.Namespace+".json")
		if err := writeArchiveFile(writer, name, data); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to finalize business network archive")
	}
	return buf.Bytes(), nil
}

// ToBase64 writes the definition as a base64-encoded archive.
func (d *BusinessNetworkDefinition) ToBase64() ([]byte, error) {
	archive, err := d.ToArchive()
	if err != nil {
		return nil, err
	}
	encoded := make([]byte, base64.StdEncoding.EncodedLen(len(archive)))
	base64.StdEncoding.Encode(encoded, archive)
	return encoded, nil
}

func readArchiveFile(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s in business network archive", file.Name)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s in business network archive", file.Name)
	}
	return data, nil
}

func writeArchiveFile(writer *zip.Writer, name string, data []byte) error {
	w, err := writer.Create(name)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s in business network archive", name)
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrapf(err, "failed to write %s in business network archive", name)
	}
	return nil
}
