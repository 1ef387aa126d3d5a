// Package docs holds the API document served under /docs.
// It is maintained by hand in the layout swag init emits.
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
		"/orders": {
			"post": {
				"tags": [
					"orders"
				],
				"summary": "Place an order",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Tenant id",
						"name": "X-Tenant-ID",
						"in": "header",
						"required": true
					},
					{
						"type": "integer",
						"description": "Restaurant id",
						"name": "X-Restaurant-ID",
						"in": "header",
						"required": true
					},
					{
						"description": "Cart",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/services.PlaceOrderCommand"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/rest.APIResponse"
						}
					},
					"400": {
						"description": "Invalid input",
						"schema": {
							"$ref": "#/definitions/rest.APIResponse"
						}
					},
					"422": {
						"description": "Selection invalid",
						"schema": {
							"$ref": "#/definitions/rest.APIResponse"
						}
					}
				}
			}
		},
		"/orders/{id}": {
			"get": {
				"tags": [
					"orders"
				],
				"summary": "Get order status",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Tenant id",
						"name": "X-Tenant-ID",
						"in": "header",
						"required": true
					},
					{
						"type": "integer",
						"description": "Restaurant id",
						"name": "X-Restaurant-ID",
						"in": "header",
						"required": true
					},
					{
						"type": "integer",
						"description": "Order id",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/rest.APIResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/rest.APIResponse"
						}
					}
				}
			}
		},
		"/orders/{id}/status": {
			"post": {
				"tags": [
					"orders"
				],
				"summary": "Advance order status",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Tenant id",
						"name": "X-Tenant-ID",
						"in": "header",
						"required": true
					},
					{
						"type": "integer",
						"description": "Restaurant id",
						"name": "X-Restaurant-ID",
						"in": "header",
						"required": true
					},
					{
						"type": "integer",
						"description": "Order id",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Target status",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.AdvanceStatusRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/rest.APIResponse"
						}
					},
					"409": {
						"description": "Invalid transition",
						"schema": {
							"$ref": "#/definitions/rest.APIResponse"
						}
					}
				}
			}
		},
		"/orders/{id}/cancel": {
			"post": {
				"tags": [
					"orders"
				],
				"summary": "Cancel an order",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Tenant id",
						"name": "X-Tenant-ID",
						"in": "header",
						"required": true
					},
					{
						"type": "integer",
						"description": "Restaurant id",
						"name": "X-Restaurant-ID",
						"in": "header",
						"required": true
					},
					{
						"type": "integer",
						"description": "Order id",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/rest.APIResponse"
						}
					},
					"409": {
						"description": "Invalid transition",
						"schema": {
							"$ref": "#/definitions/rest.APIResponse"
						}
					}
				}
			}
		},
		"/orders/{id}/checkout": {
			"post": {
				"tags": [
					"checkout"
				],
				"summary": "Start card payment for an order",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Tenant id",
						"name": "X-Tenant-ID",
						"in": "header",
						"required": true
					},
					{
						"type": "integer",
						"description": "Restaurant id",
						"name": "X-Restaurant-ID",
						"in": "header",
						"required": true
					},
					{
						"type": "integer",
						"description": "Order id",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"201": {
						"description": "Redirect URL and session token",
						"schema": {
							"$ref": "#/definitions/rest.APIResponse"
						}
					},
					"409": {
						"description": "Order already paid",
						"schema": {
							"$ref": "#/definitions/rest.APIResponse"
						}
					},
					"422": {
						"description": "Card payments unavailable",
						"schema": {
							"$ref": "#/definitions/rest.APIResponse"
						}
					},
					"502": {
						"description": "Gateway signing failed",
						"schema": {
							"$ref": "#/definitions/rest.APIResponse"
						}
					}
				}
			}
		},
		"/subscriptions/checkout": {
			"post": {
				"tags": [
					"checkout"
				],
				"summary": "Start subscription payment",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Tenant id",
						"name": "X-Tenant-ID",
						"in": "header",
						"required": true
					},
					{
						"type": "integer",
						"description": "Restaurant id",
						"name": "X-Restaurant-ID",
						"in": "header",
						"required": true
					},
					{
						"description": "Plan",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.SubscriptionCheckoutRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Redirect URL and session token",
						"schema": {
							"$ref": "#/definitions/rest.APIResponse"
						}
					},
					"404": {
						"description": "Unknown plan",
						"schema": {
							"$ref": "#/definitions/rest.APIResponse"
						}
					}
				}
			}
		},
		"/payments/callback/success": {
			"get": {
				"tags": [
					"callbacks"
				],
				"summary": "Order payment approved (browser redirect)",
				"parameters": [
					{
						"type": "string",
						"name": "TransId",
						"in": "query"
					},
					{
						"type": "string",
						"name": "ResultCode",
						"in": "query"
					},
					{
						"type": "string",
						"name": "Amount",
						"in": "query"
					},
					{
						"type": "string",
						"name": "OrderId",
						"in": "query"
					},
					{
						"type": "string",
						"name": "Echo1",
						"in": "query"
					},
					{
						"type": "string",
						"name": "Echo2",
						"in": "query"
					},
					{
						"type": "string",
						"name": "Echo3",
						"in": "query"
					},
					{
						"type": "string",
						"name": "ErrMsg",
						"in": "query"
					}
				],
				"responses": {
					"302": {
						"description": "Redirect to the status page"
					}
				}
			},
			"post": {
				"tags": [
					"callbacks"
				],
				"summary": "Order payment approved (server to server)",
				"consumes": [
					"application/json",
					"application/x-www-form-urlencoded"
				],
				"produces": [
					"application/json"
				],
				"parameters": [],
				"responses": {
					"200": {
						"description": "Callback outcome",
						"schema": {
							"$ref": "#/definitions/handlers.CallbackResponse"
						}
					}
				}
			}
		},
		"/payments/callback/error": {
			"get": {
				"tags": [
					"callbacks"
				],
				"summary": "Order payment failed (browser redirect)",
				"parameters": [
					{
						"type": "string",
						"name": "TransId",
						"in": "query"
					},
					{
						"type": "string",
						"name": "ResultCode",
						"in": "query"
					},
					{
						"type": "string",
						"name": "Amount",
						"in": "query"
					},
					{
						"type": "string",
						"name": "OrderId",
						"in": "query"
					},
					{
						"type": "string",
						"name": "Echo1",
						"in": "query"
					},
					{
						"type": "string",
						"name": "Echo2",
						"in": "query"
					},
					{
						"type": "string",
						"name": "Echo3",
						"in": "query"
					},
					{
						"type": "string",
						"name": "ErrMsg",
						"in": "query"
					}
				],
				"responses": {
					"302": {
						"description": "Redirect to the status page"
					}
				}
			},
			"post": {
				"tags": [
					"callbacks"
				],
				"summary": "Order payment failed (server to server)",
				"consumes": [
					"application/json",
					"application/x-www-form-urlencoded"
				],
				"produces": [
					"application/json"
				],
				"parameters": [],
				"responses": {
					"200": {
						"description": "Callback outcome",
						"schema": {
							"$ref": "#/definitions/handlers.CallbackResponse"
						}
					}
				}
			}
		},
		"/subscriptions/callback/success": {
			"get": {
				"tags": [
					"callbacks"
				],
				"summary": "Subscription payment approved (browser redirect)",
				"parameters": [
					{
						"type": "string",
						"name": "TransId",
						"in": "query"
					},
					{
						"type": "string",
						"name": "ResultCode",
						"in": "query"
					},
					{
						"type": "string",
						"name": "Amount",
						"in": "query"
					},
					{
						"type": "string",
						"name": "OrderId",
						"in": "query"
					},
					{
						"type": "string",
						"name": "Echo1",
						"in": "query"
					},
					{
						"type": "string",
						"name": "Echo2",
						"in": "query"
					},
					{
						"type": "string",
						"name": "Echo3",
						"in": "query"
					},
					{
						"type": "string",
						"name": "ErrMsg",
						"in": "query"
					}
				],
				"responses": {
					"302": {
						"description": "Redirect to the status page"
					}
				}
			},
			"post": {
				"tags": [
					"callbacks"
				],
				"summary": "Subscription payment approved (server to server)",
				"consumes": [
					"application/json",
					"application/x-www-form-urlencoded"
				],
				"produces": [
					"application/json"
				],
				"parameters": [],
				"responses": {
					"200": {
						"description": "Callback outcome",
						"schema": {
							"$ref": "#/definitions/handlers.CallbackResponse"
						}
					}
				}
			}
		},
		"/subscriptions/callback/error": {
			"get": {
				"tags": [
					"callbacks"
				],
				"summary": "Subscription payment failed (browser redirect)",
				"parameters": [
					{
						"type": "string",
						"name": "TransId",
						"in": "query"
					},
					{
						"type": "string",
						"name": "ResultCode",
						"in": "query"
					},
					{
						"type": "string",
						"name": "Amount",
						"in": "query"
					},
					{
						"type": "string",
						"name": "OrderId",
						"in": "query"
					},
					{
						"type": "string",
						"name": "Echo1",
						"in": "query"
					},
					{
						"type": "string",
						"name": "Echo2",
						"in": "query"
					},
					{
						"type": "string",
						"name": "Echo3",
						"in": "query"
					},
					{
						"type": "string",
						"name": "ErrMsg",
						"in": "query"
					}
				],
				"responses": {
					"302": {
						"description": "Redirect to the status page"
					}
				}
			},
			"post": {
				"tags": [
					"callbacks"
				],
				"summary": "Subscription payment failed (server to server)",
				"consumes": [
					"application/json",
					"application/x-www-form-urlencoded"
				],
				"produces": [
					"application/json"
				],
				"parameters": [],
				"responses": {
					"200": {
						"description": "Callback outcome",
						"schema": {
							"$ref": "#/definitions/handlers.CallbackResponse"
						}
					}
				}
			}
		},
		"/shifts": {
			"post": {
				"tags": [
					"shifts"
				],
				"summary": "Open a cash-register shift",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Tenant id",
						"name": "X-Tenant-ID",
						"in": "header",
						"required": true
					},
					{
						"type": "integer",
						"description": "Restaurant id",
						"name": "X-Restaurant-ID",
						"in": "header",
						"required": true
					},
					{
						"description": "Cashier and opening float",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/services.OpenShiftCommand"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/rest.APIResponse"
						}
					},
					"409": {
						"description": "A shift is already open",
						"schema": {
							"$ref": "#/definitions/rest.APIResponse"
						}
					}
				}
			}
		},
		"/shifts/current/movements": {
			"post": {
				"tags": [
					"shifts"
				],
				"summary": "Record a cash movement",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Tenant id",
						"name": "X-Tenant-ID",
						"in": "header",
						"required": true
					},
					{
						"type": "integer",
						"description": "Restaurant id",
						"name": "X-Restaurant-ID",
						"in": "header",
						"required": true
					},
					{
						"description": "Movement",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/services.RecordMovementCommand"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/rest.APIResponse"
						}
					},
					"409": {
						"description": "No open shift",
						"schema": {
							"$ref": "#/definitions/rest.APIResponse"
						}
					}
				}
			}
		},
		"/shifts/current/close": {
			"post": {
				"tags": [
					"shifts"
				],
				"summary": "Close the current shift",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Tenant id",
						"name": "X-Tenant-ID",
						"in": "header",
						"required": true
					},
					{
						"type": "integer",
						"description": "Restaurant id",
						"name": "X-Restaurant-ID",
						"in": "header",
						"required": true
					},
					{
						"description": "Counted closing balance",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/services.CloseShiftCommand"
						}
					}
				],
				"responses": {
					"200": {
						"description": "Z-report",
						"schema": {
							"$ref": "#/definitions/rest.APIResponse"
						}
					},
					"409": {
						"description": "No open shift",
						"schema": {
							"$ref": "#/definitions/rest.APIResponse"
						}
					}
				}
			}
		},
		"/shifts/{id}/report": {
			"get": {
				"tags": [
					"shifts"
				],
				"summary": "Z-report for a shift",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Tenant id",
						"name": "X-Tenant-ID",
						"in": "header",
						"required": true
					},
					{
						"type": "integer",
						"description": "Restaurant id",
						"name": "X-Restaurant-ID",
						"in": "header",
						"required": true
					},
					{
						"type": "string",
						"description": "Shift id or current",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "Z-report",
						"schema": {
							"$ref": "#/definitions/rest.APIResponse"
						}
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/rest.APIResponse"
						}
					}
				}
			}
		},
		"/shifts/{id}/report.xlsx": {
			"get": {
				"tags": [
					"shifts"
				],
				"summary": "Z-report as XLSX",
				"produces": [
					"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Tenant id",
						"name": "X-Tenant-ID",
						"in": "header",
						"required": true
					},
					{
						"type": "integer",
						"description": "Restaurant id",
						"name": "X-Restaurant-ID",
						"in": "header",
						"required": true
					},
					{
						"type": "string",
						"description": "Shift id or current",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "Workbook"
					},
					"404": {
						"description": "Not found",
						"schema": {
							"$ref": "#/definitions/rest.APIResponse"
						}
					}
				}
			}
		},
		"/payment-settings": {
			"get": {
				"tags": [
					"settings"
				],
				"summary": "Accepted payment methods",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Tenant id",
						"name": "X-Tenant-ID",
						"in": "header",
						"required": true
					},
					{
						"type": "integer",
						"description": "Restaurant id",
						"name": "X-Restaurant-ID",
						"in": "header",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/rest.APIResponse"
						}
					},
					"404": {
						"description": "Not configured",
						"schema": {
							"$ref": "#/definitions/rest.APIResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"rest.APIError": {
			"type": "object",
			"properties": {
				"code": {
					"type": "string"
				},
				"message": {
					"type": "string"
				},
				"details": {
					"type": "object",
					"additionalProperties": {
						"type": "string"
					}
				}
			}
		},
		"rest.APIResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"data": {
					"type": "object"
				},
				"error": {
					"$ref": "#/definitions/rest.APIError"
				}
			}
		},
		"domain.Customer": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"phone": {
					"type": "string"
				},
				"address": {
					"type": "string"
				}
			}
		},
		"services.CartLine": {
			"type": "object",
			"required": [
				"menu_item_id",
				"quantity"
			],
			"properties": {
				"menu_item_id": {
					"type": "integer",
					"format": "int64"
				},
				"variant_id": {
					"type": "integer",
					"format": "int64"
				},
				"addon_ids": {
					"type": "array",
					"items": {
						"type": "integer",
						"format": "int64"
					}
				},
				"quantity": {
					"type": "integer",
					"minimum": 1
				}
			}
		},
		"services.PlaceOrderCommand": {
			"type": "object",
			"required": [
				"channel",
				"delivery_method",
				"payment_method",
				"lines"
			],
			"properties": {
				"customer": {
					"$ref": "#/definitions/domain.Customer"
				},
				"channel": {
					"type": "string",
					"enum": [
						"online",
						"pos"
					]
				},
				"delivery_method": {
					"type": "string",
					"enum": [
						"delivery",
						"pickup",
						"dine_in"
					]
				},
				"payment_method": {
					"type": "string",
					"enum": [
						"cash",
						"credit",
						"online"
					]
				},
				"lines": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/services.CartLine"
					}
				}
			}
		},
		"services.OpenShiftCommand": {
			"type": "object",
			"required": [
				"cashier_id"
			],
			"properties": {
				"cashier_id": {
					"type": "integer",
					"format": "int64"
				},
				"opening_balance": {
					"type": "string",
					"example": "200.00"
				}
			}
		},
		"services.RecordMovementCommand": {
			"type": "object",
			"required": [
				"type",
				"method",
				"amount"
			],
			"properties": {
				"type": {
					"type": "string",
					"enum": [
						"payment",
						"cash_in",
						"cash_out",
						"refund"
					]
				},
				"method": {
					"type": "string",
					"enum": [
						"cash",
						"credit"
					]
				},
				"amount": {
					"type": "string",
					"example": "30.00"
				},
				"order_id": {
					"type": "integer",
					"format": "int64"
				},
				"description": {
					"type": "string"
				}
			}
		},
		"services.CloseShiftCommand": {
			"type": "object",
			"required": [
				"closing_balance"
			],
			"properties": {
				"closing_balance": {
					"type": "string",
					"example": "315.00"
				},
				"notes": {
					"type": "string"
				}
			}
		},
		"handlers.AdvanceStatusRequest": {
			"type": "object",
			"required": [
				"status"
			],
			"properties": {
				"status": {
					"type": "string",
					"enum": [
						"preparing",
						"ready",
						"delivering",
						"delivered",
						"cancelled"
					]
				}
			}
		},
		"handlers.SubscriptionCheckoutRequest": {
			"type": "object",
			"required": [
				"plan_code"
			],
			"properties": {
				"plan_code": {
					"type": "string",
					"example": "pro-3"
				}
			}
		},
		"handlers.CallbackResult": {
			"type": "object",
			"properties": {
				"order_id": {
					"type": "integer",
					"format": "int64"
				},
				"payment_status": {
					"type": "string"
				},
				"code": {
					"type": "string"
				},
				"message": {
					"type": "string"
				}
			}
		},
		"handlers.CallbackResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"data": {
					"$ref": "#/definitions/handlers.CallbackResult"
				}
			}
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:		  "1.0",
	Host:			 "",
	BasePath:		 "/",
	Schemes:		  []string{},
	Title:			"dinepay API",
	Description:	  "Order pricing, card-payment settlement and cash-register shifts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:		"{{",
	RightDelim:	   "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
