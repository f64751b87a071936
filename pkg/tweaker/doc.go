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

/*
Package tweaker runs pack author scripts against the recycler tables.

Scripts are ECMAScript 5.1 run by goja between Initialize and PostInit.
The runtime exposes:

	recipes.add(input, [outputs...])        // returns a Result constant
	recipes.lookup(item)                    // {input, outputs} or null
	items.setValue(item, Scrap.POOR)
	items.setIgnored(item, true)
	items.setScrubbed(item, true)
	extraction.add(input, [[item, weight], [null, weight], ...])
	rubble.add(item, min, max, weight)
	log(message...)

Items are written in the text form "[Nx ]modid:path[:meta|:*]". In
extraction tables a name without a colon is an ore dictionary name and
null means "nothing". Writes after the tables are frozen, and malformed
items, throw. Every run is bounded by a timeout.

	recipes.add("minecraft:anvil:*", ["31x minecraft:iron_ingot"]);
	items.setValue("minecraft:nether_star", Scrap.SUPERIOR);
	extraction.add("8x minecraft:rotten_flesh", [["recycler:soylent_green", 1]]);
*/
package tweaker
