/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package detect

// responseSchema is the contract the external detection service must meet.
// Positions are normalized to [0,1] of the uploaded image's dimensions; the
// caller denormalizes to pixels. Anything off-schema is rejected before any
// grid line is applied.
const responseSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["grid_lines"],
	"properties": {
		"grid_lines": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["label", "orientation", "position"],
				"properties": {
					"label": {"type": "string", "minLength": 1},
					"orientation": {"type": "string", "enum": ["vertical", "horizontal"]},
					"position": {"type": "number", "minimum": 0, "maximum": 1}
				},
				"additionalProperties": true
			}
		}
	},
	"additionalProperties": true
}`
