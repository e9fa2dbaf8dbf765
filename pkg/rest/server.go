/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package rest exposes a connected business network over HTTP. Routes are
// generated from the network's model: every asset and participant type gets
// CRUD endpoints under /api, transaction types accept submissions only and
// concepts are not routed. A filter query parameter restricts list results.
package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hyperledger/composer-sdk-go/pkg/bnd"
	"github.com/hyperledger/composer-sdk-go/pkg/client"
	"github.com/hyperledger/composer-sdk-go/pkg/client/registry"
	"github.com/hyperledger/composer-sdk-go/pkg/errors"
	"github.com/hyperledger/composer-sdk-go/pkg/logging"
)

var logger = logging.NewLogger("composer/rest")

// Server serves a REST API generated from a connected business network.
type Server struct {
	bnc     *client.BusinessNetworkConnection
	engine  *gin.Engine
	metrics *serverMetrics
}

// New builds a server over an already connected business network connection.
func New(bnc *client.BusinessNetworkConnection) (*Server, error) {
	if bnc == nil {
		return nil, errors.New("business network connection not specified")
	}
	definition := bnc.Definition()
	if definition == nil {
		return nil, errors.New("not connected to a business network")
	}

	gin.SetMode(gin.ReleaseMode)
	server := &Server{
		bnc:     bnc,
		engine:  gin.New(),
		metrics: newServerMetrics(),
	}
	server.engine.Use(gin.Recovery())

	server.engine.GET("/health", server.health)
	server.engine.GET("/metrics", gin.WrapH(server.metrics.handler()))
	server.registerModelRoutes(definition)
	return server, nil
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves the API on addr until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{Addr: addr, Handler: s.engine}
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	logger.Infof("REST server listening on %s", addr)
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return errors.Wrap(err, "REST server failed")
	}
}

// registerModelRoutes creates the per-type routes. The allowed methods depend
// on the declaration kind: assets and participants get full CRUD, transaction
// types accept POST only and concepts get no routes.
func (s *Server) registerModelRoutes(definition *bnd.BusinessNetworkDefinition) {
	mm := definition.ModelManager()
	for _, decl := range mm.DeclarationsOfKind(bnd.AssetKind) {
		s.registerResourceRoutes(decl, registry.AssetType)
	}
	for _, decl := range mm.DeclarationsOfKind(bnd.ParticipantKind) {
		s.registerResourceRoutes(decl, registry.ParticipantType)
	}
	for _, decl := range mm.DeclarationsOfKind(bnd.TransactionKind) {
		decl := decl
		logger.Debugf("registering transaction route for %s", decl.FullyQualifiedName())
		s.engine.POST("/api/"+decl.Name, s.instrument(decl.Name, s.submitTransaction(decl)))
	}
}

func (s *Server) registerResourceRoutes(decl *bnd.ClassDeclaration, registryType string) {
	logger.Debugf("registering %s routes for %s", strings.ToLower(registryType), decl.FullyQualifiedName())
	base := "/api/" + decl.Name
	s.engine.GET(base, s.instrument(decl.Name, s.listResources(decl, registryType)))
	s.engine.POST(base, s.instrument(decl.Name, s.createResource(decl, registryType)))
	s.engine.GET(base+"/:id", s.instrument(decl.Name, s.getResource(decl, registryType)))
	s.engine.HEAD(base+"/:id", s.instrument(decl.Name, s.headResource(decl, registryType)))
	s.engine.PUT(base+"/:id", s.instrument(decl.Name, s.updateResource(decl, registryType)))
	s.engine.DELETE(base+"/:id", s.instrument(decl.Name, s.deleteResource(decl, registryType)))
}

func (s *Server) instrument(resourceType string, handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		handler(c)
		s.metrics.observe(resourceType, c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}

func (s *Server) health(c *gin.Context) {
	response, err := s.bnc.Ping(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"version": response.Version, "participant": response.Participant})
}

func (s *Server) resourceRegistry(ctx context.Context, decl *bnd.ClassDeclaration, registryType string) (*registry.Registry, error) {
	switch registryType {
	case registry.AssetType:
		return s.bnc.GetAssetRegistry(ctx, decl.FullyQualifiedName())
	case registry.ParticipantType:
		return s.bnc.GetParticipantRegistry(ctx, decl.FullyQualifiedName())
	}
	return nil, errors.Errorf("no registry for type %s", registryType)
}

func (s *Server) listResources(decl *bnd.ClassDeclaration, registryType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, err := parseFilter(c.Query("filter"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		reg, err := s.resourceRegistry(c.Request.Context(), decl, registryType)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		resources, err := reg.GetAll(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if filter != nil {
			resources = filter.apply(resources)
		}
		s.writeResourceList(c, resources)
	}
}

func (s *Server) getResource(decl *bnd.ClassDeclaration, registryType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		reg, err := s.resourceRegistry(c.Request.Context(), decl, registryType)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		resource, err := reg.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		s.writeResource(c, http.StatusOK, resource)
	}
}

func (s *Server) headResource(decl *bnd.ClassDeclaration, registryType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		reg, err := s.resourceRegistry(c.Request.Context(), decl, registryType)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		exists, err := reg.Exists(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		if !exists {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusOK)
	}
}

func (s *Server) createResource(decl *bnd.ClassDeclaration, registryType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		resource, ok := s.readResource(c, decl)
		if !ok {
			return
		}
		reg, err := s.resourceRegistry(c.Request.Context(), decl, registryType)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := reg.Add(c.Request.Context(), resource); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		s.writeResource(c, http.StatusCreated, resource)
	}
}

func (s *Server) updateResource(decl *bnd.ClassDeclaration, registryType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		resource, ok := s.readResource(c, decl)
		if !ok {
			return
		}
		if resource.Identifier() != c.Param("id") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "resource identifier does not match URL"})
			return
		}
		reg, err := s.resourceRegistry(c.Request.Context(), decl, registryType)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := reg.Update(c.Request.Context(), resource); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		s.writeResource(c, http.StatusOK, resource)
	}
}

func (s *Server) deleteResource(decl *bnd.ClassDeclaration, registryType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		reg, err := s.resourceRegistry(c.Request.Context(), decl, registryType)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := reg.Remove(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func (s *Server) submitTransaction(decl *bnd.ClassDeclaration) gin.HandlerFunc {
	return func(c *gin.Context) {
		resource, ok := s.readResource(c, decl)
		if !ok {
			return
		}
		if err := s.bnc.SubmitTransaction(c.Request.Context(), resource); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		s.writeResource(c, http.StatusOK, resource)
	}
}

// readResource deserializes the request body and checks it is an instance of
// the routed type.
func (s *Server) readResource(c *gin.Context, decl *bnd.ClassDeclaration) (*bnd.Resource, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return nil, false
	}
	resource, err := s.bnc.Definition().Serializer().FromJSON(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	if resource.FullyQualifiedType() != decl.FullyQualifiedName() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resource type does not match this endpoint"})
		return nil, false
	}
	return resource, true
}

func (s *Server) writeResource(c *gin.Context, status int, resource *bnd.Resource) {
	data, err := s.bnc.Definition().Serializer().ToJSON(resource)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(status, "application/json", data)
}

func (s *Server) writeResourceList(c *gin.Context, resources []*bnd.Resource) {
	serializer := s.bnc.Definition().Serializer()
	docs := make([]interface{}, len(resources))
	for i, resource := range resources {
		data, err := serializer.ToJSON(resource)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		docs[i] = json.RawMessage(data)
	}
	c.JSON(http.StatusOK, docs)
}
