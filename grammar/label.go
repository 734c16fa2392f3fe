package grammar

// slot is the dispatch label: a (head, body-index, dot) triple. Slots
// are what the engine's worklist schedules descriptors against.
type slot struct {
	head  symbol
	index bodyIndex
	dot   int
}

// labelTable enumerates, for every production, the slots the engine may
// ever dispatch to: the dot-0 slot (always, even for an empty body) and
// every slot immediately following a non-terminal. Terminals never
// anchor a slot — they are consumed in the tight loop inside handleLabel
// instead. A single top-to-bottom pass per production suffices; unlike
// an LR automaton's item-set closures, slot generation needs no fixed
// point.
type labelTable struct {
	slots map[symbol][]slot // by head
}

func computeLabels(prods *productionSet) *labelTable {
	lt := &labelTable{slots: map[symbol][]slot{}}
	for _, head := range prods.heads {
		for _, prod := range prods.bodies(head) {
			lt.slots[head] = append(lt.slots[head], slot{head: head, index: prod.index, dot: 0})
			for dot := 1; dot <= prod.length(); dot++ {
				if prod.body[dot-1].isNonTerminal() {
					lt.slots[head] = append(lt.slots[head], slot{head: head, index: prod.index, dot: dot})
				}
			}
		}
	}
	return lt
}

func (lt *labelTable) initialSlots(head symbol) []slot {
	var out []slot
	for _, s := range lt.slots[head] {
		if s.dot == 0 {
			out = append(out, s)
		}
	}
	return out
}

// all returns every slot generated for head: the dot-0 slot and every
// slot immediately following a non-terminal.
func (lt *labelTable) all(head symbol) []slot {
	return lt.slots[head]
}
