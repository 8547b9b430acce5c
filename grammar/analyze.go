package grammar

// Analyze runs the table-construction pipeline — FIRST, FOLLOW, the
// canonical collection, and the ACTION/GOTO tables — over an already
// validated grammar (spec §4.2–§4.4). It is the single entry point C6's
// orchestrator calls between Construct and handing a driver factory to
// callers; exported separately so callers that only need diagnostics
// (FIRST/FOLLOW dumps, the canonical collection, the tables themselves)
// can stop short of building a driver. It returns FIRST and FOLLOW
// alongside the collection and table — spec §6 names "Sets: FIRST and
// FOLLOW dumps" as an Output an embedder must be able to produce, and
// `report.Write` renders both (FOLLOW is otherwise inert: the table
// builder never consults it, see follow.go).
func Analyze(g *Grammar) (*Collection, *Table, *FirstSets, *FollowSets, error) {
	first, err := genFirstSet(g.productionSet)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	follow, err := genFollowSet(g.productionSet, first, g.Start())
	if err != nil {
		return nil, nil, nil, nil, err
	}

	collection, err := buildCollection(g, first)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	table, err := buildTable(g, collection)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return collection, table, first, follow, nil
}
