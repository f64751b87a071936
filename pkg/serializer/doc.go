// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package serializer writes reports and reads documents in JSON, YAML or a
// flattened table.
//
// # Writing
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	defer w.Close()
//	if err := w.Serialize(ctx, report); err != nil {
//	    return err
//	}
//
// An empty path writes to stdout. Unknown formats fall back to JSON with a
// warning. The table format flattens nested structs, maps and slices into
// dotted FIELD/VALUE rows sorted by field name.
//
// # Reading
//
//	pack, err := serializer.FromFile[datapack.Pack]("packs/extra.yaml")
//
// The format is detected from the file extension (.json, .yaml, .yml).
// Table output is write-only.
package serializer
