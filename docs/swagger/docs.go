// Package swagger registers the OpenAPI document served at /swagger. It is
// maintained alongside the swag annotations on the listing handlers.
package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["listings"],
                "summary": "List categories",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CategoriesResponse"}}
                }
            }
        },
        "/item-types": {
            "get": {
                "produces": ["application/json"],
                "tags": ["listings"],
                "summary": "List item types",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ItemTypesResponse"}}
                }
            }
        },
        "/listings": {
            "get": {
                "description": "Case-insensitive keyword and location matching, exact type and category matching. Only active listings are returned, newest first.",
                "produces": ["application/json"],
                "tags": ["listings"],
                "summary": "Search listings",
                "parameters": [
                    {"type": "string", "description": "Substring of title or description", "name": "keywords", "in": "query"},
                    {"type": "string", "description": "lost, found or sell", "name": "type", "in": "query"},
                    {"type": "string", "description": "One of GET /categories", "name": "category", "in": "query"},
                    {"type": "string", "description": "Substring of location", "name": "location", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ListingsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errhttp.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Rules apply in order and the first failure wins: required fields, known category and type, positive price for sale items, email-shaped contact.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["listings"],
                "summary": "Post listing",
                "parameters": [
                    {"description": "Listing draft", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateListingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ListingResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errhttp.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errhttp.ErrorResponse"}}
                }
            }
        },
        "/listings/recent": {
            "get": {
                "produces": ["application/json"],
                "tags": ["listings"],
                "summary": "Recent listings",
                "parameters": [
                    {"type": "integer", "description": "Maximum listings; capped at 6", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ListingsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errhttp.ErrorResponse"}}
                }
            }
        },
        "/listings/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["listings"],
                "summary": "Get listing",
                "parameters": [
                    {"type": "integer", "description": "Listing ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ListingResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errhttp.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errhttp.ErrorResponse"}}
                }
            }
        },
        "/listings/{id}/resolve": {
            "post": {
                "description": "Idempotent: resolving an already resolved listing returns it unchanged.",
                "produces": ["application/json"],
                "tags": ["listings"],
                "summary": "Resolve listing",
                "parameters": [
                    {"type": "integer", "description": "Listing ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ListingResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errhttp.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errhttp.ErrorResponse"}}
                }
            }
        },
        "/view": {
            "get": {
                "description": "Re-runs the current page's entry effects. New visitors start on home.",
                "produces": ["application/json"],
                "tags": ["view"],
                "summary": "Current view",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ViewResponse"}}
                }
            }
        },
        "/view/clear": {
            "post": {
                "produces": ["application/json"],
                "tags": ["view"],
                "summary": "Clear filters",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ViewResponse"}}
                }
            }
        },
        "/view/navigate": {
            "post": {
                "description": "page is home, search or postItem. item_type pre-selects the post form type.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["view"],
                "summary": "Navigate",
                "parameters": [
                    {"description": "Target page", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NavigateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ViewResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errhttp.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errhttp.ErrorResponse"}}
                }
            }
        },
        "/view/post-type": {
            "post": {
                "description": "An empty item_type clears the selection.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["view"],
                "summary": "Select post type",
                "parameters": [
                    {"description": "Item type", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SelectTypeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ViewResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errhttp.ErrorResponse"}}
                }
            }
        },
        "/view/search": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["view"],
                "summary": "Search from the view",
                "parameters": [
                    {"description": "Filter form", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FilterForm"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ViewResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errhttp.ErrorResponse"}}
                }
            }
        },
        "/view/submit": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["view"],
                "summary": "Submit post form",
                "parameters": [
                    {"description": "Listing draft", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateListingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ViewResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errhttp.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errhttp.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "CategoriesResponse": {
            "type": "object",
            "properties": {
                "categories": {"type": "array", "items": {"type": "string"}, "example": ["Electronics", "Keys"]}
            }
        },
        "CreateListingRequest": {
            "type": "object",
            "properties": {
                "category": {"type": "string", "maxLength": 64, "example": "Bags/Wallets"},
                "contact_info": {"type": "string", "maxLength": 254, "example": "owner@email.com"},
                "description": {"type": "string", "maxLength": 2000, "example": "Brown leather wallet"},
                "item_type": {"type": "string", "maxLength": 16, "example": "lost"},
                "location": {"type": "string", "maxLength": 200, "example": "Central Station"},
                "price": {"type": "number", "example": 450},
                "title": {"type": "string", "maxLength": 200, "example": "Lost Wallet"}
            }
        },
        "FilterForm": {
            "type": "object",
            "properties": {
                "category": {"type": "string", "example": "Keys"},
                "keywords": {"type": "string", "example": "keys"},
                "location": {"type": "string", "example": "parking"},
                "type": {"type": "string", "example": "found"}
            }
        },
        "ItemTypesResponse": {
            "type": "object",
            "properties": {
                "item_types": {"type": "array", "items": {"$ref": "#/definitions/PostForm"}}
            }
        },
        "ListingResponse": {
            "type": "object",
            "properties": {
                "category": {"type": "string", "example": "Electronics"},
                "contact_info": {"type": "string", "example": "seller@email.com"},
                "date_posted": {"type": "string", "example": "2024-09-08"},
                "description": {"type": "string", "example": "Dell laptop in good condition, 8GB RAM, 256GB SSD"},
                "id": {"type": "integer", "example": 3},
                "item_type": {"type": "string", "example": "sell"},
                "location": {"type": "string", "example": "Downtown"},
                "price": {"type": "number", "example": 450},
                "status": {"type": "string", "example": "active"},
                "title": {"type": "string", "example": "Laptop for Sale"}
            }
        },
        "ListingsResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer", "example": 3},
                "listings": {"type": "array", "items": {"$ref": "#/definitions/ListingResponse"}}
            }
        },
        "NavigateRequest": {
            "type": "object",
            "required": ["page"],
            "properties": {
                "item_type": {"type": "string", "maxLength": 16, "example": "sell"},
                "page": {"type": "string", "maxLength": 16, "example": "postItem"}
            }
        },
        "PostForm": {
            "type": "object",
            "properties": {
                "item_type": {"type": "string", "example": "sell"},
                "price_required": {"type": "boolean"},
                "price_visible": {"type": "boolean"},
                "title": {"type": "string", "example": "Post Item for Sale"}
            }
        },
        "SelectTypeRequest": {
            "type": "object",
            "properties": {
                "item_type": {"type": "string", "maxLength": 16, "example": "lost"}
            }
        },
        "ViewResponse": {
            "type": "object",
            "properties": {
                "filter": {"$ref": "#/definitions/FilterForm"},
                "listings": {"type": "array", "items": {"$ref": "#/definitions/ListingResponse"}},
                "message": {"type": "string", "example": "Your item has been posted successfully!"},
                "no_results": {"type": "boolean"},
                "page": {"type": "string", "example": "home"},
                "post_form": {"$ref": "#/definitions/PostForm"},
                "posted": {"$ref": "#/definitions/ListingResponse"}
            }
        },
        "errhttp.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "invalid price"},
                "message": {"type": "string", "example": "Please enter a valid price for items for sale."}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Lost & Found API",
	Description:      "Classified listings for lost, found and for-sale items.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
