package engine

import (
	"fmt"
	"math/rand"
)

// ProcessAction validates and applies one action for the current player. It
// is the sole mutator of the game. Validation completes before any mutation,
// so a returned error guarantees the state is untouched. rng feeds every
// shuffle the action may trigger.
func (s *GameState) ProcessAction(action PlayerAction, rng *rand.Rand) (ActionOutcome, error) {
	p := s.players[s.currPlayer]
	switch a := action.(type) {
	case BuyCard:
		return s.processBuy(p, a)
	case *BuyCard:
		return s.processBuy(p, *a)
	case Move:
		return s.processMove(p, a)
	case *Move:
		return s.processMove(p, *a)
	case Draw:
		return s.processDraw(p, a, rng)
	case *Draw:
		return s.processDraw(p, *a, rng)
	case Trash:
		return s.processTrash(p, a)
	case *Trash:
		return s.processTrash(p, *a)
	case Discard:
		return s.processDiscard(p, a)
	case *Discard:
		return s.processDiscard(p, *a)
	case FinishTurn:
		return s.processFinishTurn(p, rng)
	case *FinishTurn:
		return s.processFinishTurn(p, rng)
	}
	return outcomeOk(), fmt.Errorf("%w: unsupported action %T", ErrInvalidAction, action)
}

func (s *GameState) processBuy(p *Player, a BuyCard) (ActionOutcome, error) {
	if !validIndices(a.Cards, len(p.Hand)) || !validIndices(a.Tokens, len(p.Tokens)) {
		return outcomeOk(), fmt.Errorf("%w: indices must be strictly increasing and in range", ErrBadIndex)
	}
	fromStorage := false
	var list []BuyableCard
	switch a.Source {
	case BuyFromShop:
		list = s.shop
	case BuyFromStorage:
		if !s.HasOpenShop() {
			return outcomeOk(), fmt.Errorf("%w: storage cards need an open shop slot", ErrShopFull)
		}
		list = s.storage
		fromStorage = true
	default:
		return outcomeOk(), fmt.Errorf("%w: unknown buy source %q", ErrInvalidAction, a.Source)
	}
	if a.Index < 0 || a.Index >= len(list) {
		return outcomeOk(), fmt.Errorf("%w: no listing at index %d", ErrBadIndex, a.Index)
	}
	listing := list[a.Index]
	if listing.Quantity <= 0 {
		return outcomeOk(), fmt.Errorf("%w: %s", ErrOutOfStock, listing.Card)
	}

	payment := 0
	freeBuyCards := 0
	for _, idx := range a.Cards {
		c := p.Hand[idx]
		payment += c.GoldValue()
		if c.Action == ActionFreeBuy {
			freeBuyCards++
		}
	}
	doubleUses := 0
	for _, idx := range a.Tokens {
		t := p.Tokens[idx]
		switch t.Kind {
		case TokenDesert:
			payment += t.GoldValue()
		case TokenDoubleUse:
			doubleUses++
		case TokenShareHex:
			// consumed without contributing gold
		default:
			return outcomeOk(), fmt.Errorf("%w: token %s has no use in a purchase", ErrInvalidAction, t.Kind)
		}
	}

	free := payment < listing.Cost
	if free {
		if freeBuyCards != 1 {
			return outcomeOk(), fmt.Errorf("%w: need %d gold, offered %d", ErrNotEnoughGold, listing.Cost, payment)
		}
	} else if !p.CanBuy {
		return outcomeOk(), ErrAlreadyBought
	}

	// Validated. Take the card, relocating storage listings to the shop
	// first.
	if fromStorage {
		s.storage = append(s.storage[:a.Index], s.storage[a.Index+1:]...)
		s.shop = append(s.shop, listing)
		s.shop = takeListing(s.shop, len(s.shop)-1)
	} else {
		s.shop = takeListing(s.shop, a.Index)
	}
	sortShop(s.shop)
	p.Discard = append(p.Discard, listing.Card)

	paid := p.takeHandCards(a.Cards)
	p.takeTokens(a.Tokens)
	for _, c := range paid {
		contributed := !free || c.Action == ActionFreeBuy
		if c.SingleUse && contributed {
			if doubleUses > 0 {
				doubleUses--
				p.Played = append(p.Played, c)
			}
			// else trashed
			continue
		}
		p.Played = append(p.Played, c)
	}
	if !free {
		p.CanBuy = false
	}
	return outcomeOk(), nil
}

// takeListing decrements a listing's stock, delisting it at zero.
func takeListing(list []BuyableCard, i int) []BuyableCard {
	list[i].Quantity--
	if list[i].Quantity <= 0 {
		list = append(list[:i], list[i+1:]...)
	}
	return list
}

// moveWalk is the outcome of validating a move's path: accumulated costs,
// the final position, and any held step.
type moveWalk struct {
	movement    [3]int
	cardCost    int
	hexCardCost int
	steps       int
	final       AxialCoord
	ignored     int
	caveCoord   AxialCoord
	caveVisit   bool
	barrierIdx  int
	landTerrain Terrain
	sharedFinal bool
}

// walkPath classifies every step of a path without mutating anything.
func (s *GameState) walkPath(p *Player, path []HexDirection) (*moveWalk, error) {
	w := &moveWalk{ignored: NoIgnoredStep, barrierIdx: -1}
	cur := p.Position
	if _, ok := s.hexMap.NodeIdx(cur); !ok {
		return nil, fmt.Errorf("%w: no node at player position %v", ErrCorruptState, cur)
	}
	for i, dir := range path {
		if !dir.Valid() {
			return nil, fmt.Errorf("%w: bad direction at step %d", ErrIllegalStep, i)
		}
		if bi := s.blockingBarrier(cur, dir, w.barrierIdx); bi >= 0 {
			if w.ignored != NoIgnoredStep {
				return nil, fmt.Errorf("%w: at most one held step per move", ErrIllegalStep)
			}
			b := s.barriers[bi]
			if mi, ok := b.Terrain.movementIndex(); ok {
				w.movement[mi] += b.Cost
			} else {
				w.cardCost += b.Cost
			}
			w.barrierIdx = bi
			w.ignored = i
			continue // breaking the barrier holds position
		}
		next := dir.Neighbor(cur)
		node, ok := s.hexMap.NodeAt(next)
		if !ok || !node.Passable() {
			return nil, fmt.Errorf("%w: cannot enter %v", ErrIllegalStep, next)
		}
		switch node.Terrain {
		case TerrainCave:
			if len(path) != 1 {
				return nil, fmt.Errorf("%w: a cave visit must be the only step", ErrIllegalStep)
			}
			if p.hasVisitedCave(next) {
				return nil, fmt.Errorf("%w: %v", ErrCaveVisited, next)
			}
			if len(s.caveTokens[next]) == 0 {
				return nil, fmt.Errorf("%w: %v", ErrCaveEmpty, next)
			}
			w.ignored = i
			w.caveCoord = next
			w.caveVisit = true
			continue // collecting a cave holds position
		case TerrainJungle, TerrainDesert, TerrainWater:
			mi, _ := node.Terrain.movementIndex()
			w.movement[mi] += node.Cost
		case TerrainSwamp, TerrainVillage:
			w.cardCost += node.Cost
			w.hexCardCost += node.Cost
		default:
			return nil, fmt.Errorf("%w: cannot enter %s at %v", ErrIllegalStep, node.Terrain, next)
		}
		if s.IsOccupied(next, s.currPlayer) {
			if i != len(path)-1 {
				return nil, fmt.Errorf("%w: %v", ErrOccupied, next)
			}
			w.sharedFinal = true
		}
		cur = next
		w.steps++
		w.landTerrain = node.Terrain
	}
	w.final = cur
	return w, nil
}

// blockingBarrier returns the index of the active barrier crossed by
// stepping from coord in dir, skipping skipIdx, or -1.
func (s *GameState) blockingBarrier(coord AxialCoord, dir HexDirection, skipIdx int) int {
	for i := range s.barriers {
		if i != skipIdx && s.barriers[i].Blocks(coord, dir) {
			return i
		}
	}
	return -1
}

func (s *GameState) processMove(p *Player, a Move) (ActionOutcome, error) {
	if len(a.Path) == 0 {
		return outcomeOk(), fmt.Errorf("%w: empty move path", ErrInvalidAction)
	}
	if !validIndices(a.Cards, len(p.Hand)) || !validIndices(a.Tokens, len(p.Tokens)) {
		return outcomeOk(), fmt.Errorf("%w: indices must be strictly increasing and in range", ErrBadIndex)
	}
	w, err := s.walkPath(p, a.Path)
	if err != nil {
		return outcomeOk(), err
	}

	// Classify the referenced tokens.
	var moveToken *BonusToken
	shareHex, swapSymbol, freeMoveTokens, doubleUses := 0, 0, 0, 0
	for _, ti := range a.Tokens {
		t := p.Tokens[ti]
		switch t.Kind {
		case TokenShareHex:
			shareHex++
		case TokenSwapSymbol:
			swapSymbol++
		case TokenFreeMove:
			freeMoveTokens++
		case TokenDoubleUse:
			doubleUses++
		case TokenJungle, TokenDesert, TokenWater:
			if moveToken != nil {
				return outcomeOk(), fmt.Errorf("%w: at most one movement token per move", ErrWrongTokenCount)
			}
			tok := t
			moveToken = &tok
		default:
			return outcomeOk(), fmt.Errorf("%w: token %s cannot pay for movement", ErrInvalidAction, t.Kind)
		}
	}
	if shareHex > 1 || swapSymbol > 1 || freeMoveTokens > 1 {
		return outcomeOk(), fmt.Errorf("%w: duplicate effect tokens", ErrWrongTokenCount)
	}
	freeMoveCards := 0
	for _, ci := range a.Cards {
		if p.Hand[ci].Action == ActionFreeMove {
			freeMoveCards++
		}
	}
	if freeMoveTokens+freeMoveCards > 1 {
		return outcomeOk(), fmt.Errorf("%w: at most one free-move effect per move", ErrWrongTokenCount)
	}
	free := freeMoveTokens+freeMoveCards == 1
	if free {
		if w.steps != 1 {
			return outcomeOk(), fmt.Errorf("%w: a free move is a single step", ErrIllegalStep)
		}
		if w.barrierIdx >= 0 {
			if _, ok := s.barriers[w.barrierIdx].Terrain.movementIndex(); ok {
				return outcomeOk(), fmt.Errorf("%w: a free move cannot break a barrier", ErrIllegalStep)
			}
		}
		// Movement travels free; a swamp barrier's card cost is still due.
		w.movement = [3]int{}
	}

	if w.sharedFinal && shareHex == 0 {
		return outcomeOk(), fmt.Errorf("%w: %v", ErrOccupied, w.final)
	}

	total := w.movement[0] + w.movement[1] + w.movement[2]
	needed := w.movement[0]
	moveType := 0
	for i := 1; i < 3; i++ {
		if w.movement[i] > needed {
			needed = w.movement[i]
			moveType = i
		}
	}
	if total != needed {
		return outcomeOk(), fmt.Errorf("%w: a move cannot mix terrain types", ErrIllegalStep)
	}
	if w.hexCardCost > 0 && total > 0 {
		return outcomeOk(), fmt.Errorf("%w: a card-cost hex must be the move's only step", ErrIllegalStep)
	}

	switch {
	case w.caveVisit:
		if len(a.Cards) != 0 || len(a.Tokens) != 0 {
			return outcomeOk(), fmt.Errorf("%w: a cave visit takes no cards or tokens", ErrInvalidAction)
		}

	case needed == 0:
		// Card-cost move, or a free move with remaining card cost.
		if w.steps > 1 {
			return outcomeOk(), fmt.Errorf("%w: paying with cards allows a single step", ErrIllegalStep)
		}
		if moveToken != nil || swapSymbol > 0 {
			return outcomeOk(), fmt.Errorf("%w: only share-hex tokens may join a card-cost move", ErrWrongTokenCount)
		}
		if !free && doubleUses > 0 {
			return outcomeOk(), fmt.Errorf("%w: only share-hex tokens may join a card-cost move", ErrWrongTokenCount)
		}
		if len(a.Cards) != freeMoveCards+w.cardCost {
			return outcomeOk(), fmt.Errorf("%w: need %d cards, got %d", ErrWrongCardCount, freeMoveCards+w.cardCost, len(a.Cards))
		}

	case moveToken != nil:
		if swapSymbol > 0 {
			return outcomeOk(), fmt.Errorf("%w: symbol swap applies to cards only", ErrInvalidAction)
		}
		if len(a.Cards) != w.cardCost {
			return outcomeOk(), fmt.Errorf("%w: need %d cards, got %d", ErrWrongCardCount, w.cardCost, len(a.Cards))
		}
		capacity, _ := moveToken.movement()
		if capacity[moveType] < needed {
			return outcomeOk(), fmt.Errorf("%w: token covers %d, path costs %d", ErrNotEnoughMoves, capacity[moveType], needed)
		}

	default:
		// One movement card, plus extra cards for any swamp-barrier cost.
		if len(a.Cards) != 1+w.cardCost {
			return outcomeOk(), fmt.Errorf("%w: need %d cards, got %d", ErrWrongCardCount, 1+w.cardCost, len(a.Cards))
		}
		covered := false
		for _, ci := range a.Cards {
			c := p.Hand[ci]
			capacity := c.Movement[moveType]
			if swapSymbol == 1 && c.MaxMovement() > capacity {
				capacity = c.MaxMovement()
			}
			if capacity >= needed {
				covered = true
				break
			}
		}
		if !covered {
			return outcomeOk(), fmt.Errorf("%w: no referenced card covers a cost of %d", ErrNotEnoughMoves, needed)
		}
	}

	// Validated. Apply.
	paid := p.takeHandCards(a.Cards)
	p.takeTokens(a.Tokens)
	for _, c := range paid {
		switch {
		case w.landTerrain == TerrainVillage:
			// trashed
		case c.SingleUse:
			if doubleUses > 0 {
				doubleUses--
				p.Played = append(p.Played, c)
			}
			// else trashed
		default:
			p.Played = append(p.Played, c)
		}
	}
	p.Position = w.final
	if w.caveVisit {
		stack := s.caveTokens[w.caveCoord]
		p.Tokens = append(p.Tokens, stack[len(stack)-1])
		s.caveTokens[w.caveCoord] = stack[:len(stack)-1]
		p.VisitedCaves = append(p.VisitedCaves, w.caveCoord)
	}
	p.dropStaleCaves()
	if w.barrierIdx >= 0 {
		b := s.barriers[w.barrierIdx]
		p.BrokenBarriers = append(p.BrokenBarriers, BrokenBarrier{
			FromBoard: b.FromBoard, ToBoard: b.ToBoard, Terrain: b.Terrain, Cost: b.Cost,
		})
		s.barriers = append(s.barriers[:w.barrierIdx], s.barriers[w.barrierIdx+1:]...)
	}
	if w.ignored != NoIgnoredStep {
		return outcomeIgnoreStep(w.ignored), nil
	}
	return outcomeOk(), nil
}

func (s *GameState) processDraw(p *Player, a Draw, rng *rand.Rand) (ActionOutcome, error) {
	if (a.Card == nil) == (a.Token == nil) {
		return outcomeOk(), fmt.Errorf("%w: draw references exactly one card or one token", ErrInvalidAction)
	}
	if a.Card != nil {
		idx := *a.Card
		if idx < 0 || idx >= len(p.Hand) {
			return outcomeOk(), fmt.Errorf("%w: no hand card at %d", ErrBadIndex, idx)
		}
		if !validIndices(a.Tokens, len(p.Tokens)) {
			return outcomeOk(), fmt.Errorf("%w: indices must be strictly increasing and in range", ErrBadIndex)
		}
		doubleUses := 0
		for _, ti := range a.Tokens {
			if p.Tokens[ti].Kind != TokenDoubleUse {
				return outcomeOk(), fmt.Errorf("%w: token %s has no use in a draw", ErrInvalidAction, p.Tokens[ti].Kind)
			}
			doubleUses++
		}
		card := p.Hand[idx]
		if !card.HasDraw() {
			return outcomeOk(), fmt.Errorf("%w: %s", ErrNoDrawEffect, card)
		}
		p.Hand = append(p.Hand[:idx], p.Hand[idx+1:]...)
		p.takeTokens(a.Tokens)
		p.drawCards(card.ActionCount, rng)
		if card.Action == ActionDrawAndTrash {
			p.Trashes += card.ActionCount
		}
		if !card.SingleUse || doubleUses > 0 {
			p.Played = append(p.Played, card)
		}
		return outcomeOk(), nil
	}

	idx := *a.Token
	if len(a.Tokens) != 0 {
		return outcomeOk(), fmt.Errorf("%w: extra tokens accompany draw cards only", ErrInvalidAction)
	}
	if idx < 0 || idx >= len(p.Tokens) {
		return outcomeOk(), fmt.Errorf("%w: no token at %d", ErrBadIndex, idx)
	}
	switch t := p.Tokens[idx]; t.Kind {
	case TokenDrawCard:
		p.takeTokens([]int{idx})
		p.drawCards(1, rng)
	case TokenTrashCard:
		p.takeTokens([]int{idx})
		p.Trashes++
	case TokenReplaceHand:
		p.takeTokens([]int{idx})
		n := len(p.Hand)
		p.Discard = append(p.Discard, p.Hand...)
		p.Hand = nil
		p.drawCards(n, rng)
	default:
		return outcomeOk(), fmt.Errorf("%w: token %s", ErrNoDrawEffect, t.Kind)
	}
	return outcomeOk(), nil
}

func (s *GameState) processTrash(p *Player, a Trash) (ActionOutcome, error) {
	if len(a.Cards) == 0 {
		return outcomeOk(), fmt.Errorf("%w: nothing to trash", ErrInvalidAction)
	}
	if !validIndices(a.Cards, len(p.Hand)) {
		return outcomeOk(), fmt.Errorf("%w: indices must be strictly increasing and in range", ErrBadIndex)
	}
	if len(a.Cards) > p.Trashes {
		return outcomeOk(), fmt.Errorf("%w: allowance %d, asked %d", ErrNoTrashesLeft, p.Trashes, len(a.Cards))
	}
	p.takeHandCards(a.Cards)
	p.Trashes -= len(a.Cards)
	return outcomeOk(), nil
}

func (s *GameState) processDiscard(p *Player, a Discard) (ActionOutcome, error) {
	if len(a.Cards) == 0 {
		return outcomeOk(), fmt.Errorf("%w: nothing to discard", ErrInvalidAction)
	}
	if !validIndices(a.Cards, len(p.Hand)) {
		return outcomeOk(), fmt.Errorf("%w: indices must be strictly increasing and in range", ErrBadIndex)
	}
	p.Discard = append(p.Discard, p.takeHandCards(a.Cards)...)
	return outcomeOk(), nil
}

func (s *GameState) processFinishTurn(p *Player, rng *rand.Rand) (ActionOutcome, error) {
	p.finishTurn(rng)
	s.currPlayer++
	if s.currPlayer >= len(s.players) {
		s.currPlayer = 0
		s.round++
		if len(s.PlayersAtFinish()) > 0 {
			return outcomeGameOver(), nil
		}
	}
	return outcomeOk(), nil
}
