// Package docs holds the OpenAPI document served at /api/swagger. Keep it in
// step with the handler annotations in internal/server (swag init regenerates it).
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/posts": {
            "get": {
                "description": "Newest first. tag takes precedence over title and createdBy.",
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Search posts",
                "parameters": [
                    {"type": "integer", "default": 0, "description": "Zero-based page", "name": "page", "in": "query"},
                    {"type": "integer", "default": 20, "description": "Page size", "name": "size", "in": "query"},
                    {"type": "string", "description": "Title substring", "name": "title", "in": "query"},
                    {"type": "string", "description": "Exact author", "name": "createdBy", "in": "query"},
                    {"type": "string", "description": "Tag name", "name": "tag", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.PostSummaryPage"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Create a post with an ordered tag list",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Create post",
                "parameters": [
                    {"description": "Post", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/server.createPostRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/server.idResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/posts/{id}": {
            "get": {
                "description": "Post with its tags, like count and comments",
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Get post",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.PostDetail"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "put": {
                "description": "Replace title, content and tags. Only the author may update.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Update post",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true},
                    {"description": "Post", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/server.updatePostRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.idResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "delete": {
                "description": "Delete a post with its comments, tags and likes. Only the author may delete.",
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Delete post",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Requesting author", "name": "deleteBy", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.idResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/posts/{id}/comments": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "Comment on a post",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true},
                    {"description": "Comment", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/server.createCommentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/server.idResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/posts/{id}/likes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["likes"],
                "summary": "Count likes",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.likeCountResponse"}}
                }
            },
            "post": {
                "description": "Every call adds a like, including repeats by the same author.",
                "produces": ["application/json"],
                "tags": ["likes"],
                "summary": "Like a post",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Liking author", "name": "createdBy", "in": "query", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/server.idResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/comments/{commentId}": {
            "put": {
                "description": "Only the comment's author may update it.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "Update comment",
                "parameters": [
                    {"type": "integer", "description": "Comment ID", "name": "commentId", "in": "path", "required": true},
                    {"description": "Comment", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/server.updateCommentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.idResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "Delete comment",
                "parameters": [
                    {"type": "integer", "description": "Comment ID", "name": "commentId", "in": "path", "required": true},
                    {"type": "string", "description": "Requesting author", "name": "deleteBy", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.idResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.CommentView": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "content": {"type": "string"},
                "created_by": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "string"},
                "details": {"type": "string"}
            }
        },
        "models.PostDetail": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "content": {"type": "string"},
                "created_by": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_by": {"type": "string"},
                "updated_at": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "like_count": {"type": "integer"},
                "comments": {"type": "array", "items": {"$ref": "#/definitions/models.CommentView"}}
            }
        },
        "models.PostSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "created_by": {"type": "string"},
                "first_tag": {"type": "string"},
                "like_count": {"type": "integer"}
            }
        },
        "models.PostSummaryPage": {
            "type": "object",
            "properties": {
                "content": {"type": "array", "items": {"$ref": "#/definitions/models.PostSummary"}},
                "number": {"type": "integer"},
                "size": {"type": "integer"},
                "total_elements": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "server.createCommentRequest": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "created_by": {"type": "string"}
            }
        },
        "server.createPostRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "content": {"type": "string"},
                "created_by": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}}
            }
        },
        "server.idResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"}
            }
        },
        "server.likeCountResponse": {
            "type": "object",
            "properties": {
                "post_id": {"type": "integer"},
                "count": {"type": "integer"}
            }
        },
        "server.updateCommentRequest": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "updated_by": {"type": "string"}
            }
        },
        "server.updatePostRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "content": {"type": "string"},
                "updated_by": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Board API",
	Description:      "Posts, comments, tags and likes with author-based ownership.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
